package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

type categoriesEnvelope struct {
	Categories []string `json:"categories"`
}

type itemsEnvelope struct {
	Items []InventoryItem `json:"items"`
}

type itemEnvelope struct {
	Message string        `json:"message"`
	Item    InventoryItem `json:"item"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

type transactionsEnvelope struct {
	Transactions []Transaction `json:"transactions"`
}

type transactionEnvelope struct {
	Message     string      `json:"message"`
	Transaction Transaction `json:"transaction"`
}

// ItemQuery filters the inventory list.
type ItemQuery struct {
	Search   string
	Category string
	Stock    StockFilter
}

// Encode renders the backend query string. Empty and All values are omitted.
func (q ItemQuery) Encode() string {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Category != "" && q.Category != "All" {
		values.Set("category", q.Category)
	}
	if q.Stock != "" && q.Stock != FilterAll {
		values.Set("stock_level", string(q.Stock))
	}
	return values.Encode()
}

// Dashboard loads summary stats, category distribution and recent movements.
func (c *Client) Dashboard(ctx context.Context) Result[DashboardSummary] {
	return Fetch[DashboardSummary](ctx, c, http.MethodGet, "/api/dashboard", nil)
}

// Report loads the label/value series for a report type.
func (c *Client) Report(ctx context.Context, reportType string) Result[ReportSeries] {
	return Fetch[ReportSeries](ctx, c, http.MethodGet, "/api/reports/"+url.PathEscape(reportType), nil)
}

// InventoryValue loads the value-by-category series.
func (c *Client) InventoryValue(ctx context.Context) Result[ReportSeries] {
	return c.Report(ctx, "inventory_value")
}

// SharedCallTimeout bounds a deduplicated request, which runs detached from
// the caller that started it.
const SharedCallTimeout = 10 * time.Second

// Categories loads category names. Concurrent callers share one request; a
// caller whose context ends stops waiting without failing the others.
func (c *Client) Categories(ctx context.Context) Result[[]string] {
	ch := c.group.DoChan("categories", func() (any, error) {
		detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.sharedTimeout)
		defer cancel()
		return Fetch[categoriesEnvelope](detached, c, http.MethodGet, "/api/categories", nil), nil
	})
	select {
	case <-ctx.Done():
		return transportFailure[[]string](ctx.Err())
	case out := <-ch:
		res := out.Val.(Result[categoriesEnvelope])
		return Map(res, func(e categoriesEnvelope) []string { return e.Categories })
	}
}

// Items loads the filtered item list.
func (c *Client) Items(ctx context.Context, q ItemQuery) Result[[]InventoryItem] {
	path := "/api/inventory"
	if qs := q.Encode(); qs != "" {
		path += "?" + qs
	}
	res := Fetch[itemsEnvelope](ctx, c, http.MethodGet, path, nil)
	return Map(res, func(e itemsEnvelope) []InventoryItem { return e.Items })
}

// Item loads one item.
func (c *Client) Item(ctx context.Context, id ID) Result[InventoryItem] {
	res := Fetch[itemEnvelope](ctx, c, http.MethodGet, itemPath(id), nil)
	return Map(res, func(e itemEnvelope) InventoryItem { return e.Item })
}

// CreateItem adds an item.
func (c *Client) CreateItem(ctx context.Context, in ItemInput) Result[InventoryItem] {
	res := Fetch[itemEnvelope](ctx, c, http.MethodPost, "/api/inventory", in)
	return Map(res, func(e itemEnvelope) InventoryItem { return e.Item })
}

// UpdateItem replaces an item's editable fields.
func (c *Client) UpdateItem(ctx context.Context, id ID, in ItemInput) Result[InventoryItem] {
	res := Fetch[itemEnvelope](ctx, c, http.MethodPut, itemPath(id), in)
	return Map(res, func(e itemEnvelope) InventoryItem { return e.Item })
}

// DeleteItem removes an item and returns the backend message.
func (c *Client) DeleteItem(ctx context.Context, id ID) Result[string] {
	res := Fetch[messageEnvelope](ctx, c, http.MethodDelete, itemPath(id), nil)
	return Map(res, func(e messageEnvelope) string { return e.Message })
}

// Transactions loads movement history, optionally for one item.
func (c *Client) Transactions(ctx context.Context, itemID ID) Result[[]Transaction] {
	path := "/api/transactions"
	if itemID != "" {
		path += "?" + url.Values{"item_id": {string(itemID)}}.Encode()
	}
	res := Fetch[transactionsEnvelope](ctx, c, http.MethodGet, path, nil)
	return Map(res, func(e transactionsEnvelope) []Transaction { return e.Transactions })
}

// RecordTransaction posts a stock movement.
func (c *Client) RecordTransaction(ctx context.Context, in TransactionInput) Result[Transaction] {
	res := Fetch[transactionEnvelope](ctx, c, http.MethodPost, "/api/transactions", in)
	return Map(res, func(e transactionEnvelope) Transaction { return e.Transaction })
}

func itemPath(id ID) string {
	return "/api/inventory/" + url.PathEscape(string(id))
}
