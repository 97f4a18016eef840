package chart

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

// Render draws series with the renderer selected by cfg.Kind.
func Render(cfg Config, series Series, f Formatter) (template.HTML, error) {
	if len(series.Labels) != len(series.Data) {
		return "", fmt.Errorf("chart: %d labels for %d values", len(series.Labels), len(series.Data))
	}
	cfg = cfg.withDefaults()
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(cfg.Width, cfg.Height,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, cfg.Width, cfg.Height),
		`role="img"`,
		`class="chart chart-`+string(cfg.Kind)+`"`,
		`preserveAspectRatio="xMidYMid meet"`)
	canvas.Title(fallback(cfg.Title, "Chart"))
	if cfg.Description != "" {
		canvas.Desc(cfg.Description)
	}

	switch {
	case series.Len() == 0:
		drawEmpty(canvas, cfg)
	case cfg.Kind == KindBar:
		drawBars(canvas, cfg, series, f)
	case cfg.Kind == KindPie:
		drawArcs(canvas, cfg, series, f, 0)
	case cfg.Kind == KindDoughnut:
		drawArcs(canvas, cfg, series, f, 0.55)
	default:
		return "", fmt.Errorf("chart: unsupported kind %q", cfg.Kind)
	}

	canvas.End()
	return template.HTML(stripProlog(buf.Bytes())), nil
}

func drawEmpty(canvas *svg.SVG, cfg Config) {
	canvas.Rect(0, 0, cfg.Width, cfg.Height, attr("fill", emptyFill), attr("opacity", "0.4"))
	canvas.Text(cfg.Width/2, cfg.Height/2, "No data available",
		attr("fill", axisColor), attr("font-size", "14"), attr("text-anchor", "middle"))
}

// stripProlog drops the XML declaration and generator comment so the markup
// can be inlined into HTML.
func stripProlog(b []byte) string {
	if i := bytes.Index(b, []byte("<svg")); i > 0 {
		b = b[i:]
	}
	return string(b)
}

func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
