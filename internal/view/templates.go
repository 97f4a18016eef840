package view

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/inventory-web/internal/shared"
	"github.com/odyssey-erp/inventory-web/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
	format    *shared.Formatter
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Alerts      []shared.Alert
	CurrentPath string
	Data        any
}

// NewEngine parses the embedded templates.
func NewEngine(format *shared.Formatter) (*Engine, error) {
	if format == nil {
		format = shared.DefaultFormatter()
	}
	funcMap := template.FuncMap{
		"currency":      format.Currency,
		"currencyFloat": format.CurrencyFloat,
		"number":        format.Number,
		"timestamp":     format.Timestamp,
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(format.Location()).Format("02 Jan 2006")
		},
		"decimalInput": func(d decimal.Decimal) string {
			return d.StringFixed(2)
		},
		"active": func(current, prefix string) bool {
			return current == prefix || strings.HasPrefix(current, prefix+"/")
		},
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl, format: format}, nil
}

// Formatter exposes the formatter bound to the template functions.
func (e *Engine) Formatter() *shared.Formatter {
	if e == nil {
		return shared.DefaultFormatter()
	}
	return e.format
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}

// Execute renders a named template into any writer.
func (e *Engine) Execute(w io.Writer, name string, data any) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	return e.templates.ExecuteTemplate(w, name, data)
}
