package chart

import (
	"errors"
	"html/template"
)

// ErrNotMounted is returned when updating a canvas without a live chart.
var ErrNotMounted = errors.New("chart: canvas has no live chart")

// Canvas owns at most one live chart. A page keeps one Canvas per chart slot.
type Canvas struct {
	formatter Formatter
	cfg       Config
	labels    []string
	data      []float64
	markup    template.HTML
	live      bool
}

// NewCanvas returns an empty canvas using f for tooltips and ticks.
func NewCanvas(f Formatter) *Canvas {
	return &Canvas{formatter: f}
}

// Mount creates the chart with an empty series.
func (c *Canvas) Mount(cfg Config) error {
	return c.Swap(cfg, Series{})
}

// Swap discards the live chart, if any, and builds a new one.
func (c *Canvas) Swap(cfg Config, series Series) error {
	c.Destroy()
	c.cfg = cfg
	c.labels = append([]string(nil), series.Labels...)
	c.data = append([]float64(nil), series.Data...)
	if err := c.redraw(); err != nil {
		c.Destroy()
		return err
	}
	c.live = true
	return nil
}

// Update replaces the labels and values of the live chart in place and
// redraws it with the same configuration.
func (c *Canvas) Update(series Series) error {
	if !c.live {
		return ErrNotMounted
	}
	c.labels = append(c.labels[:0], series.Labels...)
	c.data = append(c.data[:0], series.Data...)
	return c.redraw()
}

// Destroy tears the live chart down.
func (c *Canvas) Destroy() {
	c.cfg = Config{}
	c.labels = nil
	c.data = nil
	c.markup = ""
	c.live = false
}

// Live reports whether a chart is mounted.
func (c *Canvas) Live() bool {
	return c.live
}

// Config returns the live chart configuration.
func (c *Canvas) Config() Config {
	return c.cfg
}

// Labels returns the live chart labels.
func (c *Canvas) Labels() []string {
	return append([]string(nil), c.labels...)
}

// Data returns the live chart values.
func (c *Canvas) Data() []float64 {
	return append([]float64(nil), c.data...)
}

// HTML returns the rendered SVG, empty when nothing is mounted.
func (c *Canvas) HTML() template.HTML {
	return c.markup
}

func (c *Canvas) redraw() error {
	markup, err := Render(c.cfg, Series{Labels: c.labels, Data: c.data}, c.formatter)
	if err != nil {
		return err
	}
	c.markup = markup
	return nil
}
