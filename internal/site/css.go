package site

// shellCSS is the shared stylesheet written into dist/assets/shell.css on
// every build.
const shellCSS = `:root {
  --bg: #0b1220;
  --fg: #e2e8f0;
  --accent: #2563eb;
  --muted: #94a3b8;
  --max-width: 46rem;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: system-ui, -apple-system, "Segoe UI", sans-serif;
  line-height: 1.6;
  color: var(--fg);
  background: var(--bg);
}

a { color: var(--accent); }
a:hover { text-decoration-thickness: 2px; }

.skip-link {
  position: absolute;
  left: -9999px;
}
.skip-link:focus {
  left: 1rem;
  top: 1rem;
  background: var(--accent);
  color: #fff;
  padding: 0.5rem 1rem;
}

.site-header nav {
  display: flex;
  gap: 1.25rem;
  align-items: baseline;
  max-width: var(--max-width);
  margin: 0 auto;
  padding: 1.25rem 1rem;
}
.site-header .brand {
  font-weight: 700;
  margin-right: auto;
  color: var(--fg);
  text-decoration: none;
}

main {
  max-width: var(--max-width);
  margin: 0 auto;
  padding: 1rem;
}

.hero h1 { font-size: 2.25rem; margin-bottom: 0.25rem; }
.hero p { color: var(--muted); }

.tags {
  list-style: none;
  display: flex;
  gap: 0.5rem;
  padding: 0;
}
.tags li {
  background: #1e293b;
  border-radius: 999px;
  padding: 0.1rem 0.7rem;
  font-size: 0.85rem;
}

article.project, article.post {
  border-top: 1px solid #1e293b;
  padding: 1.25rem 0;
}

time { color: var(--muted); font-size: 0.9rem; }

.site-footer {
  max-width: var(--max-width);
  margin: 2rem auto 0;
  padding: 1rem;
  color: var(--muted);
  border-top: 1px solid #1e293b;
}

form label { display: block; margin-bottom: 0.75rem; }
form input, form textarea {
  display: block;
  width: 100%;
  margin-top: 0.25rem;
  padding: 0.5rem;
  background: #111a2e;
  border: 1px solid #1e293b;
  border-radius: 4px;
  color: var(--fg);
}
form button {
  background: var(--accent);
  border: 0;
  color: #fff;
  padding: 0.6rem 1.4rem;
  border-radius: 4px;
  cursor: pointer;
}
`
