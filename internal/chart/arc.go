package chart

import (
	"fmt"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

// drawArcs renders a pie, or a doughnut when hole is above zero. The legend
// sits to the right of the disc.
func drawArcs(canvas *svg.SVG, cfg Config, series Series, f Formatter, hole float64) {
	total := 0.0
	for _, v := range series.Data {
		if v > 0 {
			total += v
		}
	}

	radius := float64(cfg.Height)/2 - 16
	cx := radius + 16
	cy := float64(cfg.Height) / 2
	inner := radius * hole

	if total == 0 {
		canvas.Circle(int(cx), int(cy), int(radius), attr("fill", emptyFill))
	}

	angle := -math.Pi / 2
	for i, label := range series.Labels {
		value := math.Max(0, series.Data[i])
		color := cfg.Colors[i%len(cfg.Colors)]
		canvas.Group(`class="chart-slice"`, attr("data-label", label), attr("data-value", strconv.FormatFloat(series.Data[i], 'f', -1, 64)))
		canvas.Title(label + ": " + cfg.format(f, series.Data[i]) + percentOf(value, total))
		if total > 0 && value > 0 {
			sweep := value / total * 2 * math.Pi
			canvas.Path(slicePath(cx, cy, radius, inner, angle, angle+sweep), attr("fill", color), attr("stroke", "#FFFFFF"), attr("stroke-width", "1"))
			angle += sweep
		}
		canvas.Gend()
	}

	legendX := int(cx+radius) + 24
	for i, label := range series.Labels {
		y := 24 + i*18
		canvas.Rect(legendX, y-10, 10, 10, attr("fill", cfg.Colors[i%len(cfg.Colors)]))
		canvas.Text(legendX+16, y, label, attr("fill", axisColor), attr("font-size", "11"))
	}
}

func slicePath(cx, cy, r, inner, start, end float64) string {
	// A full circle cannot be drawn as one arc.
	if end-start >= 2*math.Pi-1e-9 {
		end = start + 2*math.Pi - 1e-4
	}
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	x1, y1 := cx+r*math.Cos(start), cy+r*math.Sin(start)
	x2, y2 := cx+r*math.Cos(end), cy+r*math.Sin(end)
	if inner <= 0 {
		return fmt.Sprintf("M%.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f Z", cx, cy, x1, y1, r, r, large, x2, y2)
	}
	ix1, iy1 := cx+inner*math.Cos(end), cy+inner*math.Sin(end)
	ix2, iy2 := cx+inner*math.Cos(start), cy+inner*math.Sin(start)
	return fmt.Sprintf("M%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 0 %.2f %.2f Z",
		x1, y1, r, r, large, x2, y2, ix1, iy1, inner, inner, large, ix2, iy2)
}

func percentOf(value, total float64) string {
	if total <= 0 {
		return ""
	}
	return fmt.Sprintf(" (%.1f%%)", value/total*100)
}
