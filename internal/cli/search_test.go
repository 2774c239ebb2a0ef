package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewSearchCmd(t *testing.T) {
	cmd := NewSearchCmd()

	if cmd == nil {
		t.Fatal("NewSearchCmd() returned nil")
	}
	if cmd.Use != "search <terms...>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "search <terms...>")
	}
}

func TestSearchCommandFlags(t *testing.T) {
	cmd := NewSearchCmd()

	tests := []struct {
		long  string
		short string
	}{
		{"json", "j"},
		{"endpoints", "e"},
	}
	for _, tt := range tests {
		flag := cmd.Flags().Lookup(tt.long)
		if flag == nil {
			t.Errorf("Flag %q not registered", tt.long)
			continue
		}
		if flag.Shorthand != tt.short {
			t.Errorf("Flag %q shorthand = %q, want %q", tt.long, flag.Shorthand, tt.short)
		}
	}
}

func TestSearchCommandHelp(t *testing.T) {
	cmd := NewSearchCmd()
	cmd.SetArgs([]string{"--help"})

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() with --help failed: %v", err)
	}

	output := buf.String()
	for _, expected := range []string{"text", "semantic", "--json", "--endpoints"} {
		if !strings.Contains(output, expected) {
			t.Errorf("Help output missing %q", expected)
		}
	}
}

func TestSearchCommandRequiresTerms(t *testing.T) {
	cmd := NewSearchCmd()
	cmd.SetArgs([]string{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() without terms succeeded")
	}
}

func TestCommandConstructors(t *testing.T) {
	cmds := []struct {
		name string
		use  string
	}{
		{"stats", NewStatsCmd().Use},
		{"export", NewExportCmd().Use},
		{"update", NewUpdateCmd().Use},
		{"setup", NewSetupCmd().Use},
		{"serve", NewServeCmd().Use},
		{"bench", NewBenchCmd().Use},
		{"keys", NewKeysCmd().Use},
		{"list", NewListCmd().Use},
		{"version", NewVersionCmd().Use},
	}
	for _, c := range cmds {
		if !strings.HasPrefix(c.use, c.name) {
			t.Errorf("command Use = %q, want prefix %q", c.use, c.name)
		}
	}
}

func TestRemoveAndEndpointsRequireName(t *testing.T) {
	remove := NewRemoveCmd()
	remove.SetArgs([]string{})
	remove.SilenceUsage = true
	remove.SilenceErrors = true
	if err := remove.Execute(); err == nil {
		t.Error("remove without a name succeeded")
	}

	endpoints := NewEndpointsCmd()
	endpoints.SetArgs([]string{})
	endpoints.SilenceUsage = true
	endpoints.SilenceErrors = true
	if err := endpoints.Execute(); err == nil {
		t.Error("endpoints without a name succeeded")
	}
}
