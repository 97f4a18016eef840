package dashboard

import (
	"github.com/odyssey-erp/inventory-web/internal/backend"
	"github.com/odyssey-erp/inventory-web/internal/chart"
	"github.com/odyssey-erp/inventory-web/internal/shared"
	"github.com/odyssey-erp/inventory-web/internal/transactions"
)

// Page is the dashboard view model. It owns both chart canvases.
type Page struct {
	Loaded          bool
	TotalItems      int
	TotalValue      string
	LowStockItems   int
	OutOfStockItems int
	Recent          []transactions.Row
	RecentColumns   int
	CategoryChart   *chart.Canvas
	ValueChart      *chart.Canvas
}

func newPage(format *shared.Formatter) Page {
	return Page{
		TotalValue:    format.CurrencyFloat(0),
		RecentColumns: 6,
		CategoryChart: chart.NewCanvas(format),
		ValueChart:    chart.NewCanvas(format),
	}
}

func (p *Page) mount() error {
	if err := p.CategoryChart.Mount(chart.CategoryDistribution()); err != nil {
		return err
	}
	return p.ValueChart.Mount(chart.ValueByCategory())
}

func (p *Page) applySummary(s backend.DashboardSummary, format *shared.Formatter) {
	p.Loaded = true
	p.TotalItems = s.TotalItems
	p.TotalValue = format.Currency(s.TotalValue)
	p.LowStockItems = s.LowStockItems
	p.OutOfStockItems = s.OutOfStockItems
	recent := transactions.BuildRows(s.RecentTransactions, format)
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	p.Recent = recent
}
