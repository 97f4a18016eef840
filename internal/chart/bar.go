package chart

import (
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

func drawBars(canvas *svg.SVG, cfg Config, series Series, f Formatter) {
	pad := DefaultPadding
	chartWidth := cfg.Width - 2*pad
	chartHeight := cfg.Height - 2*pad
	bottom := pad + chartHeight

	maxVal := 0.0
	for _, v := range series.Data {
		maxVal = math.Max(maxVal, v)
	}
	maxVal = niceCeil(maxVal)
	scale := float64(chartHeight) / maxVal

	canvas.Group(`class="chart-grid"`, attr("stroke", gridColor), attr("stroke-width", "1"))
	for i := 0; i <= DefaultTicks; i++ {
		ratio := float64(i) / DefaultTicks
		y := bottom - int(math.Round(ratio*float64(chartHeight)))
		canvas.Line(pad, y, pad+chartWidth, y, attr("stroke-dasharray", "2,4"))
	}
	canvas.Gend()

	canvas.Group(`class="chart-ticks"`, attr("fill", axisColor), attr("font-size", "10"), attr("text-anchor", "end"))
	for i := 0; i <= DefaultTicks; i++ {
		ratio := float64(i) / DefaultTicks
		y := bottom - int(math.Round(ratio*float64(chartHeight)))
		canvas.Text(pad-6, y+4, cfg.format(f, maxVal*ratio))
	}
	canvas.Gend()

	slot := float64(chartWidth) / float64(series.Len())
	barWidth := int(math.Max(1, slot*0.6))
	for i, label := range series.Labels {
		value := math.Max(0, series.Data[i])
		h := int(math.Round(value * scale))
		x := pad + int(math.Round(slot*float64(i)+(slot-float64(barWidth))/2))
		color := cfg.Colors[i%len(cfg.Colors)]

		canvas.Group(`class="chart-bar"`, attr("data-label", label), attr("data-value", strconv.FormatFloat(series.Data[i], 'f', -1, 64)))
		canvas.Title(label + ": " + cfg.format(f, series.Data[i]))
		canvas.Rect(x, bottom-h, barWidth, h, attr("fill", color), attr("stroke", cfg.Border), attr("stroke-width", "1"))
		canvas.Text(x+barWidth/2, bottom+14, label, attr("fill", axisColor), attr("font-size", "10"), attr("text-anchor", "middle"))
		canvas.Gend()
	}

	canvas.Line(pad, pad, pad, bottom, attr("stroke", axisColor))
	canvas.Line(pad, bottom, pad+chartWidth, bottom, attr("stroke", axisColor))
}

// niceCeil rounds a maximum up to 1, 2 or 5 times a power of ten.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if v <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}
