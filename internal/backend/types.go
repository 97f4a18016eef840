package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ID is an opaque backend identifier. The backend emits integers today but the
// console never does arithmetic on it.
type ID string

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as numbers and anything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string {
	return string(id)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Timestamp is a backend instant. Values without an offset are read as UTC.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON parses RFC 3339 and naive ISO timestamps.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseTimestamp parses a backend timestamp string.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp: unsupported format %q", raw)
}

// InventoryItem mirrors the backend item record.
type InventoryItem struct {
	ID          ID              `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CreatedAt   Timestamp       `json:"created_at"`
	UpdatedAt   Timestamp       `json:"updated_at"`
}

// TransactionType is the direction of a stock movement.
type TransactionType string

// Movement directions accepted by the backend.
const (
	StockIn  TransactionType = "in"
	StockOut TransactionType = "out"
)

// Label renders the direction for tables.
func (t TransactionType) Label() string {
	switch t {
	case StockIn:
		return "Stock In"
	case StockOut:
		return "Stock Out"
	default:
		return string(t)
	}
}

// Transaction mirrors a backend stock movement.
type Transaction struct {
	ID               ID              `json:"id"`
	ItemID           ID              `json:"item_id"`
	ItemName         string          `json:"item_name"`
	SKU              string          `json:"sku"`
	Type             TransactionType `json:"type"`
	Quantity         int             `json:"quantity"`
	PreviousQuantity int             `json:"previous_quantity"`
	NewQuantity      int             `json:"new_quantity"`
	Notes            string          `json:"notes"`
	User             string          `json:"user"`
	Timestamp        Timestamp       `json:"timestamp"`
}

// DashboardSummary is the /api/dashboard payload.
type DashboardSummary struct {
	TotalItems           int                                 `json:"total_items"`
	TotalValue           decimal.Decimal                     `json:"total_value"`
	LowStockItems        int                                 `json:"low_stock_items"`
	OutOfStockItems      int                                 `json:"out_of_stock_items"`
	CategoryDistribution *orderedmap.OrderedMap[string, int] `json:"category_distribution"`
	RecentTransactions   []Transaction                       `json:"recent_transactions"`
}

// Categories returns the distribution labels and counts in backend order.
func (d DashboardSummary) Categories() ([]string, []float64) {
	if d.CategoryDistribution == nil {
		return nil, nil
	}
	labels := make([]string, 0, d.CategoryDistribution.Len())
	values := make([]float64, 0, d.CategoryDistribution.Len())
	for pair := d.CategoryDistribution.Oldest(); pair != nil; pair = pair.Next() {
		labels = append(labels, pair.Key)
		values = append(values, float64(pair.Value))
	}
	return labels, values
}

// ReportSeries pairs labels with values by position.
type ReportSeries struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// Validate enforces the equal-length pairing.
func (s ReportSeries) Validate() error {
	if len(s.Labels) != len(s.Data) {
		return fmt.Errorf("%w: %d labels, %d values", ErrSeriesMismatch, len(s.Labels), len(s.Data))
	}
	return nil
}

// Len returns the number of points.
func (s ReportSeries) Len() int {
	return len(s.Labels)
}

// ItemInput is the create/update body.
type ItemInput struct {
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// TransactionInput is the stock movement body.
type TransactionInput struct {
	ItemID   ID              `json:"item_id"`
	Type     TransactionType `json:"type"`
	Quantity int             `json:"quantity"`
	Notes    string          `json:"notes"`
}

// StockFilter narrows the item list by quantity bucket.
type StockFilter string

// Stock filter values understood by the backend.
const (
	FilterAll        StockFilter = "All"
	FilterInStock    StockFilter = "In"
	FilterLowStock   StockFilter = "Low"
	FilterOutOfStock StockFilter = "Out"
)

// ParseStockFilter maps a query value onto a known filter, defaulting to All.
func ParseStockFilter(raw string) StockFilter {
	switch StockFilter(raw) {
	case FilterInStock, FilterLowStock, FilterOutOfStock:
		return StockFilter(raw)
	default:
		return FilterAll
	}
}
