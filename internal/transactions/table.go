package transactions

import (
	"cmp"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/odyssey-erp/inventory-web/internal/backend"
	"github.com/odyssey-erp/inventory-web/internal/shared"
)

// TableColumns is the column count of the history table.
const TableColumns = 8

// Row is one rendered stock movement.
type Row struct {
	Date             string
	TypeLabel        string
	TypeClass        string
	ItemName         string
	SKU              string
	Quantity         int
	PreviousQuantity int
	NewQuantity      int
	Notes            string
}

// Table is one sorted page of the history.
type Table struct {
	Rows    []Row
	Pager   shared.Pagination
	PrevURL string
	NextURL string
}

// Query is the history page state carried in the query string.
type Query struct {
	ItemID string
	Sort   shared.Sort
	Page   int
}

var columns = []shared.Column{
	{Key: "date", Label: "Date"},
	{Key: "type", Label: "Type"},
	{Key: "item", Label: "Item"},
	{Key: "sku", Label: "SKU"},
	{Key: "quantity", Label: "Quantity"},
	{Key: "previous", Label: "Previous"},
	{Key: "new", Label: "New"},
	{Label: "Notes"},
}

var defaultSort = shared.Sort{Key: "date", Dir: shared.SortDesc}

// ParseQuery reads the history state from query values.
func ParseQuery(q url.Values) Query {
	return Query{
		ItemID: strings.TrimSpace(q.Get("item_id")),
		Sort:   shared.ParseSort(q, columns, defaultSort),
		Page:   shared.ParsePage(q.Get("page")),
	}
}

// URL is the history page for this state.
func (q Query) URL() string {
	values := url.Values{}
	if q.ItemID != "" {
		values.Set("item_id", q.ItemID)
	}
	if q.Sort != defaultSort && q.Sort.Key != "" {
		q.Sort.Set(values)
	}
	if q.Page > 1 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if len(values) == 0 {
		return "/transactions"
	}
	return "/transactions?" + values.Encode()
}

// Headers renders the sortable column headers. A new ordering starts on the
// first page.
func (q Query) Headers() []shared.Header {
	return shared.Headers(columns, q.Sort, func(s shared.Sort) string {
		next := q
		next.Sort = s
		next.Page = 1
		return next.URL()
	})
}

func comparators() shared.Comparators[backend.Transaction] {
	text := shared.TextCollator()
	return shared.Comparators[backend.Transaction]{
		"date":     func(a, b backend.Transaction) int { return a.Timestamp.Compare(b.Timestamp.Time) },
		"type":     func(a, b backend.Transaction) int { return text(a.Type.Label(), b.Type.Label()) },
		"item":     func(a, b backend.Transaction) int { return text(a.ItemName, b.ItemName) },
		"sku":      func(a, b backend.Transaction) int { return text(a.SKU, b.SKU) },
		"quantity": func(a, b backend.Transaction) int { return cmp.Compare(a.Quantity, b.Quantity) },
		"previous": func(a, b backend.Transaction) int { return cmp.Compare(a.PreviousQuantity, b.PreviousQuantity) },
		"new":      func(a, b backend.Transaction) int { return cmp.Compare(a.NewQuantity, b.NewQuantity) },
	}
}

// BuildTable orders movements, newest first unless another column was
// picked, and cuts out the requested page.
func BuildTable(txs []backend.Transaction, f *shared.Formatter, q Query) Table {
	sorted := shared.SortRows(txs, q.Sort, comparators())
	pager := shared.NewPagination(q.Page, shared.PageSize, len(sorted))

	table := Table{Rows: rows(shared.Paginate(sorted, pager), f), Pager: pager}
	if pager.HasPrev() {
		prev := q
		prev.Page = pager.Page - 1
		table.PrevURL = prev.URL()
	}
	if pager.HasNext() {
		next := q
		next.Page = pager.Page + 1
		table.NextURL = next.URL()
	}
	return table
}

// SortNewestFirst orders movements by timestamp descending. Ties keep their
// backend order.
func SortNewestFirst(txs []backend.Transaction) []backend.Transaction {
	sorted := make([]backend.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp.Time)
	})
	return sorted
}

// BuildRows sorts movements newest first and derives display values.
func BuildRows(txs []backend.Transaction, f *shared.Formatter) []Row {
	return rows(SortNewestFirst(txs), f)
}

func rows(txs []backend.Transaction, f *shared.Formatter) []Row {
	out := make([]Row, 0, len(txs))
	for _, tx := range txs {
		notes := tx.Notes
		if notes == "" {
			notes = "-"
		}
		out = append(out, Row{
			Date:             f.Timestamp(tx.Timestamp.Time),
			TypeLabel:        tx.Type.Label(),
			TypeClass:        typeClass(tx.Type),
			ItemName:         tx.ItemName,
			SKU:              tx.SKU,
			Quantity:         tx.Quantity,
			PreviousQuantity: tx.PreviousQuantity,
			NewQuantity:      tx.NewQuantity,
			Notes:            notes,
		})
	}
	return out
}

func typeClass(t backend.TransactionType) string {
	switch t {
	case backend.StockIn:
		return "transaction-in"
	case backend.StockOut:
		return "transaction-out"
	default:
		return "transaction-other"
	}
}
