// Package templates holds the server-rendered pages. Components are written
// against the templ runtime directly; the page shell is static and all data
// arrives through the datastar SSE endpoints.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Sales &amp; Customer Dashboard</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@latest/bundles/datastar.js"></script>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #f0f2f6; }
header { padding: 16px 24px; background: #fff; border-bottom: 1px solid #ddd; }
main { padding: 24px; display: grid; gap: 24px; }
.kpi-grid { display: grid; grid-template-columns: repeat(4, 1fr); gap: 16px; }
.kpi-card { background: #fff; padding: 20px; border-radius: 10px; border-left: 4px solid #ff6b6b; }
.kpi-label { display: block; color: #666; font-size: 0.85em; }
.filters { display: flex; gap: 12px; align-items: center; flex-wrap: wrap; }
.modern-table { width: 100%; border-collapse: collapse; background: #fff; }
.modern-table th, .modern-table td { padding: 8px 12px; text-align: left; border-bottom: 1px solid #eee; }
.category-badge { background: #eef; border-radius: 6px; padding: 2px 8px; font-size: 0.85em; }
</style>
</head>
<body>
<header>
<h1>Sales &amp; Customer Dashboard</h1>
<div class="filters">
<label>From <input type="date" data-bind-start></label>
<label>To <input type="date" data-bind-end></label>
<button data-on-click="@get('/sse/dashboard?start='+$start+'&end='+$end)">Apply</button>
<a href="/api/export">Download report</a>
</div>
</header>
<main data-on-load="@get('/sse/dashboard'); @get('/sse/segments')">
<section id="kpi-content">Loading KPIs…</section>
<section id="charts">
<div id="region-chart" data-signals-regiondata="[]"></div>
<div id="trend-chart" data-signals-trenddata="[]"></div>
</section>
<section id="segments-content">Loading customer analysis…</section>
<section id="transactions-content">Loading transactions…</section>
</main>
</body>
</html>`

// Dashboard renders the single-page dashboard shell.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, dashboardPage)
		return err
	})
}
