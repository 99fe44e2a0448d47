package templates

import (
	"encoding/json"
	"fmt"
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"superstore-dashboard/internal/models"
)

var funcs = template.FuncMap{
	"slug":     func(v models.View) string { return v.Slug() },
	"money":    formatValue,
	"pct":      formatPercent,
	"selected": func(a, b string) bool { return a == b },
}

func formatValue(v float64) string {
	return message.NewPrinter(language.English).Sprintf("%.2f", v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func signalsJSON(signals map[string]string) string {
	b, err := json.Marshal(signals)
	if err != nil {
		return "{}"
	}
	return string(b)
}

var pageTemplate = template.Must(template.New("page").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Superstore Sales Dashboard</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"></script>
<style>
body { margin: 0; font-family: sans-serif; background: {{.Props.Payload.Theme.PrimaryBG}}; color: {{.Props.Payload.Theme.Text}}; }
nav { background: {{.Props.Payload.Theme.SecondaryBG}}; padding: 1rem; }
nav button { display: block; width: 100%; margin: 0.2rem 0; text-align: left; }
.layout { display: grid; grid-template-columns: 220px 1fr; min-height: 100vh; }
.filters { display: grid; grid-template-columns: 1fr 1fr 1fr 1fr 2fr; gap: 0.5rem; padding: 1rem; }
.metric-grid { display: grid; grid-template-columns: repeat(6, 1fr); gap: 1rem; padding: 0 1rem; }
.metric-card { background: {{.Props.Payload.Theme.SecondaryBG}}; border-radius: 1rem; box-shadow: 0 2px 8px rgba(80,0,120,0.08); padding: 1.2rem 1rem 1rem 1rem; text-align: center; }
.metric-label { color: {{.Props.Payload.Theme.Accent}}; font-weight: 600; font-size: 1.1rem; }
.metric-value { font-size: 2rem; font-weight: bold; margin-top: 0.2rem; }
.chart { background: {{.Props.Payload.Theme.SecondaryBG}}; border-radius: 1rem; padding: 1rem; margin: 1rem; }
.bar { background: {{.Props.Payload.Theme.Accent}}; height: 1rem; }
</style>
</head>
<body data-signals='{{.Signals}}'>
<div class="layout">
<nav>
<h2>Navigation</h2>
{{range .Views}}<button data-on-click="$view = '{{slug .}}'; @get('/sse/views/{{slug .}}')">{{.}}</button>
{{end}}<button data-on-click="$theme = $theme == 'dark' ? 'light' : 'dark'; location.assign('/?theme=' + $theme)">toggle theme</button>
</nav>
<main>
<div class="filters">
<label>Select Region
<select data-bind-region data-on-change="@get('/sse/views/' + $view)">
{{range .Props.Options.Regions}}<option value="{{.}}"{{if selected . $.Props.Payload.Filter.Region}} selected{{end}}>{{.}}</option>{{end}}
</select></label>
<label>Select State
<select data-bind-state data-on-change="@get('/sse/views/' + $view)">
{{range .Props.Options.States}}<option value="{{.}}"{{if selected . $.Props.Payload.Filter.State}} selected{{end}}>{{.}}</option>{{end}}
</select></label>
<label>Pick the City
<select data-bind-city data-on-change="@get('/sse/views/' + $view)">
{{range .Props.Options.Cities}}<option value="{{.}}"{{if selected . $.Props.Payload.Filter.City}} selected{{end}}>{{.}}</option>{{end}}
</select></label>
<label>Start Date
<input type="date" data-bind-start data-on-change="@get('/sse/views/' + $view)"></label>
<label>End Date
<input type="date" data-bind-end data-on-change="@get('/sse/views/' + $view)"></label>
</div>
{{template "cards" .Props.Payload.Cards}}
{{template "view" .View}}
</main>
</div>
</body>
</html>
{{define "cards"}}<div id="metric-cards" class="metric-grid">
{{range .}}<div class="metric-card"><span class="metric-label">{{.Icon}} {{.Label}}</span><div class="metric-value">{{.Value}}</div></div>
{{end}}</div>{{end}}
{{define "view"}}<div id="view-content">
<h1>{{.Title}}</h1>
{{if .Intro}}<p>{{.Intro}}</p>{{end}}
{{if .Options}}<label>Choose Category
<select data-bind-category data-on-change="@get('/sse/views/category')">
{{range .Options}}<option value="{{.}}"{{if selected . $.Category}} selected{{end}}>{{.}}</option>{{end}}
</select></label>{{end}}
{{range .ChartBlocks}}<section class="chart chart-{{.Kind}}" id="{{.ID}}">
<h3>{{.Title}}</h3>
<table>
{{if or .XLabel .YLabel}}<thead><tr><th>{{.XLabel}}</th><th>{{.YLabel}}</th><th></th></tr></thead>{{end}}
<tbody>
{{range .Rows}}<tr><td>{{.Label}}</td><td>{{money .Value}}</td><td>{{if .Pie}}{{pct .Share}}{{else}}<div class="bar" style="width: {{pct .Width}}"></div>{{end}}</td></tr>
{{else}}<tr><td colspan="3">No data for the current filters</td></tr>
{{end}}</tbody>
</table>
</section>
{{end}}{{range .Metrics}}<div class="metric-card"><span class="metric-label">{{.Icon}} {{.Label}}</span><div class="metric-value">{{.Value}}</div></div>
{{end}}</div>{{end}}`))
