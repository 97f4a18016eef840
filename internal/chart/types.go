package chart

// Kind selects the chart renderer.
type Kind string

// Supported chart kinds.
const (
	KindBar      Kind = "bar"
	KindDoughnut Kind = "doughnut"
	KindPie      Kind = "pie"
)

// ValueFormat selects how values read in tooltips and axis ticks.
type ValueFormat int

// Value formats.
const (
	FormatPlain ValueFormat = iota
	FormatCurrency
)

// Formatter renders values for tooltips and ticks.
type Formatter interface {
	CurrencyFloat(amount float64) string
	Number(value float64) string
}

// Config describes one chart instance.
type Config struct {
	Kind        Kind
	Title       string
	Description string
	Format      ValueFormat
	Colors      []string
	Border      string
	Width       int
	Height      int
}

// Series pairs labels with values by position.
type Series struct {
	Labels []string
	Data   []float64
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Labels)
}

// Defaults for console charts.
const (
	DefaultWidth   = 640
	DefaultHeight  = 320
	DefaultPadding = 48
	DefaultTicks   = 5
)

// Palettes used by the dashboard and reports.
var (
	DoughnutPalette = []string{"#2563EB", "#4F46E5", "#7C3AED", "#9333EA", "#C026D3", "#DB2777", "#E11D48", "#F97316", "#F59E0B", "#EAB308"}
	PiePalette      = []string{"#2563EB", "#DC2626", "#16A34A", "#F59E0B", "#475569", "#4F46E5", "#7C3AED", "#9333EA", "#C026D3", "#DB2777"}
)

// Bar colours.
const (
	BarFill   = "#2563EB"
	BarBorder = "#1D4ED8"
)

const (
	axisColor = "#475569"
	gridColor = "#CBD5E1"
	emptyFill = "#E2E8F0"
)

func (c Config) withDefaults() Config {
	if c.Kind == "" {
		c.Kind = KindBar
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if len(c.Colors) == 0 {
		switch c.Kind {
		case KindDoughnut:
			c.Colors = DoughnutPalette
		case KindPie:
			c.Colors = PiePalette
		default:
			c.Colors = []string{BarFill}
		}
	}
	if c.Border == "" && c.Kind == KindBar {
		c.Border = BarBorder
	}
	return c
}

func (c Config) format(f Formatter, v float64) string {
	if f == nil {
		return trimFloat(v)
	}
	if c.Format == FormatCurrency {
		return f.CurrencyFloat(v)
	}
	return f.Number(v)
}
