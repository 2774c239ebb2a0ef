package web

// indexPage is the minimal search page served at "/".
const indexPage = `<!doctype html>
<title>apiscout</title>
<h1>apiscout</h1>
<form id="search-form">
  <input id="query" placeholder="Search APIs" required>
  <button type="submit">Search</button>
</form>
<pre id="results"></pre>
<script>
const form = document.getElementById('search-form');
form.addEventListener('submit', async (e) => {
  e.preventDefault();
  const res = await fetch('/api/search', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({query: document.getElementById('query').value})
  });
  const data = await res.json();
  document.getElementById('results').textContent = JSON.stringify(data, null, 2);
});
</script>
`
