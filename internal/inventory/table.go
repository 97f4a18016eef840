package inventory

import (
	"cmp"
	"net/url"
	"strconv"
	"strings"

	"github.com/odyssey-erp/inventory-web/internal/backend"
	"github.com/odyssey-erp/inventory-web/internal/shared"
)

// TableColumns is the column count of the item table, actions included.
const TableColumns = 7

// Row is one rendered item with its derived display values.
type Row struct {
	ID          string
	Name        string
	SKU         string
	Description string
	Category    string
	Price       string
	Quantity    int
	Level       StockLevel
	EditURL     string
	MoveURL     string
	DeleteURL   string
}

// Table is one sorted page of the item list.
type Table struct {
	Rows    []Row
	Pager   shared.Pagination
	PrevURL string
	NextURL string
}

var itemColumns = []shared.Column{
	{Key: "name", Label: "Name"},
	{Key: "sku", Label: "SKU"},
	{Key: "category", Label: "Category"},
	{Key: "price", Label: "Price"},
	{Key: "quantity", Label: "Quantity"},
	{Label: "Status"},
	{Label: "Actions"},
}

var defaultItemSort = shared.Sort{Key: "name", Dir: shared.SortAsc}

func itemComparators() shared.Comparators[backend.InventoryItem] {
	text := shared.TextCollator()
	return shared.Comparators[backend.InventoryItem]{
		"name":     func(a, b backend.InventoryItem) int { return text(a.Name, b.Name) },
		"sku":      func(a, b backend.InventoryItem) int { return text(a.SKU, b.SKU) },
		"category": func(a, b backend.InventoryItem) int { return text(a.Category, b.Category) },
		"price":    func(a, b backend.InventoryItem) int { return a.Price.Cmp(b.Price) },
		"quantity": func(a, b backend.InventoryItem) int { return cmp.Compare(a.Quantity, b.Quantity) },
	}
}

// BuildTable sorts the latest fetch, cuts out the requested page and derives
// display rows. The result always replaces whatever was shown before.
func BuildTable(items []backend.InventoryItem, f *shared.Formatter, filters Filters) Table {
	sorted := shared.SortRows(items, filters.Sort, itemComparators())
	pager := shared.NewPagination(filters.Page, shared.PageSize, len(sorted))
	filters.Page = pager.Page

	table := Table{Rows: buildRows(shared.Paginate(sorted, pager), f, filters), Pager: pager}
	if pager.HasPrev() {
		table.PrevURL = filters.pageURL(pager.Page - 1)
	}
	if pager.HasNext() {
		table.NextURL = filters.pageURL(pager.Page + 1)
	}
	return table
}

func buildRows(items []backend.InventoryItem, f *shared.Formatter, filters Filters) []Row {
	rows := make([]Row, 0, len(items))
	back := filters.Encode()
	for _, item := range items {
		id := url.PathEscape(item.ID.String())
		named := url.Values{"name": {item.Name}}
		if back != "" {
			named.Set("return", back)
		}
		edit := "/inventory/" + id + "/edit"
		if back != "" {
			edit += "?" + url.Values{"return": {back}}.Encode()
		}
		rows = append(rows, Row{
			ID:          item.ID.String(),
			Name:        item.Name,
			SKU:         item.SKU,
			Description: item.Description,
			Category:    item.Category,
			Price:       f.Currency(item.Price),
			Quantity:    item.Quantity,
			Level:       Classify(item.Quantity),
			EditURL:     edit,
			MoveURL:     "/inventory/" + id + "/transaction?" + named.Encode(),
			DeleteURL:   "/inventory/" + id + "/delete?" + named.Encode(),
		})
	}
	return rows
}

// Filters is the list state carried in the query string: what the backend
// filters on, plus the console-side ordering and page.
type Filters struct {
	Search   string
	Category string
	Stock    backend.StockFilter
	Sort     shared.Sort
	Page     int
}

// ParseFilters reads filters from query values.
func ParseFilters(q url.Values) Filters {
	category := strings.TrimSpace(q.Get("category"))
	if category == "" {
		category = "All"
	}
	return Filters{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: category,
		Stock:    backend.ParseStockFilter(q.Get("stock_level")),
		Sort:     shared.ParseSort(q, itemColumns, defaultItemSort),
		Page:     shared.ParsePage(q.Get("page")),
	}
}

// parseReturn restores filters from a return parameter, ignoring anything
// that is not a filter.
func parseReturn(raw string) Filters {
	q, err := url.ParseQuery(raw)
	if err != nil {
		return ParseFilters(nil)
	}
	return ParseFilters(q)
}

// Active reports whether any filter narrows the list.
func (f Filters) Active() bool {
	return f.Search != "" || (f.Category != "" && f.Category != "All") || (f.Stock != "" && f.Stock != backend.FilterAll)
}

// Query converts filters to the backend list query.
func (f Filters) Query() backend.ItemQuery {
	return backend.ItemQuery{Search: f.Search, Category: f.Category, Stock: f.Stock}
}

// Encode renders the console query string for these filters.
func (f Filters) Encode() string {
	values := url.Values{}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	if f.Category != "" && f.Category != "All" {
		values.Set("category", f.Category)
	}
	if f.Stock != "" && f.Stock != backend.FilterAll {
		values.Set("stock_level", string(f.Stock))
	}
	if f.Sort != defaultItemSort && f.Sort.Key != "" {
		f.Sort.Set(values)
	}
	if f.Page > 1 {
		values.Set("page", strconv.Itoa(f.Page))
	}
	return values.Encode()
}

// Headers renders the sortable column headers. A new ordering starts on the
// first page.
func (f Filters) Headers() []shared.Header {
	return shared.Headers(itemColumns, f.Sort, func(s shared.Sort) string {
		next := f
		next.Sort = s
		next.Page = 1
		return next.ListURL()
	})
}

func (f Filters) pageURL(page int) string {
	f.Page = page
	return f.ListURL()
}

// ListURL is the inventory list with these filters applied.
func (f Filters) ListURL() string {
	if qs := f.Encode(); qs != "" {
		return "/inventory?" + qs
	}
	return "/inventory"
}

type option struct {
	Value string
	Label string
}

var stockOptions = []option{
	{Value: string(backend.FilterAll), Label: "All"},
	{Value: string(backend.FilterInStock), Label: "In Stock"},
	{Value: string(backend.FilterLowStock), Label: "Low Stock"},
	{Value: string(backend.FilterOutOfStock), Label: "Out of Stock"},
}

// AddURL opens the add dialog over the filtered list.
func (f Filters) AddURL() string {
	values, _ := url.ParseQuery(f.Encode())
	values.Set("modal", "add")
	return "/inventory?" + values.Encode()
}
