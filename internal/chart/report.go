package chart

// Report type identifiers served by the backend.
const (
	ReportInventoryValue     = "inventory_value"
	ReportStockLevels        = "stock_levels"
	ReportTransactionHistory = "transaction_history"
)

// ReportTypes lists the report types offered in the selector, in menu order.
var ReportTypes = []string{ReportInventoryValue, ReportStockLevels, ReportTransactionHistory}

var reportConfigs = map[string]Config{
	ReportInventoryValue: {
		Kind:   KindBar,
		Title:  "Inventory Value by Category",
		Format: FormatCurrency,
	},
	ReportStockLevels: {
		Kind:   KindBar,
		Title:  "Current Stock Levels",
		Format: FormatPlain,
	},
	ReportTransactionHistory: {
		Kind:   KindPie,
		Title:  "Transaction History Summary",
		Format: FormatPlain,
	},
}

// ForReport returns the chart configuration for a report type. Unknown types
// get an untitled plain bar chart.
func ForReport(reportType string) Config {
	if cfg, ok := reportConfigs[reportType]; ok {
		return cfg
	}
	return Config{Kind: KindBar}
}

// KnownReport reports whether reportType has a dedicated configuration.
func KnownReport(reportType string) bool {
	_, ok := reportConfigs[reportType]
	return ok
}

// CategoryDistribution is the dashboard doughnut.
func CategoryDistribution() Config {
	return Config{Kind: KindDoughnut, Title: "Items by Category"}
}

// ValueByCategory is the dashboard bar chart.
func ValueByCategory() Config {
	return Config{Kind: KindBar, Title: "Value by Category", Format: FormatCurrency}
}
