package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/inventory-web/internal/backend"
	"github.com/odyssey-erp/inventory-web/internal/dashboard"
	"github.com/odyssey-erp/inventory-web/internal/inventory"
	"github.com/odyssey-erp/inventory-web/internal/observability"
	"github.com/odyssey-erp/inventory-web/internal/reports"
	"github.com/odyssey-erp/inventory-web/internal/shared"
	_ "github.com/odyssey-erp/inventory-web/internal/testing/guard"
	"github.com/odyssey-erp/inventory-web/internal/transactions"
	"github.com/odyssey-erp/inventory-web/internal/view"
)

const defaultItems = `{"items":[{"id":1,"name":"Bolt","sku":"B-1","description":"M6","category":"Tools","price":12.5,"quantity":4,"created_at":"2024-01-01T09:00:00","updated_at":"2024-01-01T09:00:00"}]}`

type reply struct {
	status int
	body   string
}

// fakeBackend records every call so tests can assert how often the console
// reached the inventory service. Replies are keyed by chi route pattern.
type fakeBackend struct {
	mu         sync.Mutex
	calls      map[string]int
	queries    map[string]string
	csrfTokens []string
	replies    map[string]reply
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		calls:   map[string]int{},
		queries: map[string]string{},
		replies: map[string]reply{
			"GET /api/categories":        {body: `{"categories":["Parts","Tools"]}`},
			"GET /api/inventory":         {body: defaultItems},
			"POST /api/inventory":        {status: http.StatusCreated, body: `{"message":"Item added","item":{"id":2,"name":"Nut","sku":"N-1","category":"Tools","price":1,"quantity":10}}`},
			"GET /api/inventory/{id}":    {body: `{"item":{"id":1,"name":"Bolt","sku":"B-1","description":"M6","category":"Tools","price":12.5,"quantity":4}}`},
			"PUT /api/inventory/{id}":    {body: `{"message":"Item updated","item":{"id":1,"name":"Bolt","sku":"B-1","category":"Tools","price":13,"quantity":4}}`},
			"DELETE /api/inventory/{id}": {body: `{"message":"Item deleted"}`},
			"POST /api/transactions":     {status: http.StatusCreated, body: `{"message":"ok","transaction":{"id":9,"item_id":1,"type":"in","quantity":3,"previous_quantity":4,"new_quantity":7,"timestamp":"2024-01-02T10:00:00"}}`},
			"GET /api/transactions": {body: `{"transactions":[
				{"id":1,"item_id":1,"item_name":"Bolt","sku":"B-1","type":"in","quantity":5,"previous_quantity":0,"new_quantity":5,"timestamp":"2024-01-01T09:00:00"},
				{"id":2,"item_id":1,"item_name":"Bolt","sku":"B-1","type":"out","quantity":1,"previous_quantity":5,"new_quantity":4,"notes":"sold","timestamp":"2024-01-03T09:00:00"}]}`},
			"GET /api/dashboard": {body: `{"total_items":2,"total_value":1500,"low_stock_items":1,"out_of_stock_items":0,
				"category_distribution":{"Zeta":3,"Alpha":7},
				"recent_transactions":[{"id":1,"item_id":1,"item_name":"Bolt","sku":"B-1","type":"in","quantity":5,"previous_quantity":0,"new_quantity":5,"timestamp":"2024-01-01T09:00:00"}]}`},
		},
	}
}

func (f *fakeBackend) stub(route string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[route] = reply{status: status, body: body}
}

func (f *fakeBackend) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeBackend) snapshot() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.calls)
}

func (f *fakeBackend) query(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[path]
}

func (f *fakeBackend) respond(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		rep := f.replies[route]
		f.mu.Unlock()
		if rep.status != 0 {
			w.WriteHeader(rep.status)
		}
		_, _ = io.WriteString(w, rep.body)
	}
}

func (f *fakeBackend) handler() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			f.calls[r.Method+" "+r.URL.Path]++
			f.queries[r.URL.Path] = r.URL.RawQuery
			if token := r.Header.Get(backend.CSRFHeader); token != "" {
				f.csrfTokens = append(f.csrfTokens, token)
			}
			f.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			next.ServeHTTP(w, r)
		})
	})
	r.Get("/api/categories", f.respond("GET /api/categories"))
	r.Get("/api/inventory", f.respond("GET /api/inventory"))
	r.Post("/api/inventory", f.respond("POST /api/inventory"))
	r.Get("/api/inventory/{id}", f.respond("GET /api/inventory/{id}"))
	r.Put("/api/inventory/{id}", f.respond("PUT /api/inventory/{id}"))
	r.Delete("/api/inventory/{id}", f.respond("DELETE /api/inventory/{id}"))
	r.Post("/api/transactions", f.respond("POST /api/transactions"))
	r.Get("/api/transactions", f.respond("GET /api/transactions"))
	r.Get("/api/dashboard", f.respond("GET /api/dashboard"))
	r.Get("/api/reports/{type}", func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "type") {
		case "inventory_value":
			_, _ = io.WriteString(w, `{"labels":["Zeta","Alpha"],"data":[300,1200]}`)
		case "stock_levels":
			_, _ = io.WriteString(w, `{"labels":["Bolt","Nut"],"data":[4,10]}`)
		case "transaction_history":
			_, _ = io.WriteString(w, `{"labels":["Stock In","Stock Out"],"data":[3,1]}`)
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"Invalid report type"}`)
		}
	})
	return r
}

type fakePDF struct {
	mu   sync.Mutex
	html []byte
}

func (p *fakePDF) RenderHTML(_ context.Context, html []byte) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.html = append([]byte(nil), html...)
	return []byte("%PDF-1.7"), nil
}

func (p *fakePDF) last() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return string(p.html)
}

type console struct {
	backend *fakeBackend
	server  *httptest.Server
	client  *http.Client
	pdf     *fakePDF
}

func newConsole(t *testing.T) *console {
	t.Helper()

	fake := newFakeBackend()
	api := httptest.NewServer(fake.handler())
	t.Cleanup(api.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &Config{AppEnv: "test", AppRequestTimeout: 5 * time.Second, RateLimitPerMinute: 1000}
	sessions := shared.NewSessionManager(rdb, "inventory_session", "secret", time.Hour, false)
	csrf := shared.NewCSRFManager("csrf-secret")
	templates, err := view.NewEngine(shared.NewFormatter(shared.DefaultCurrencySymbol, time.UTC))
	require.NoError(t, err)

	metrics := observability.NewMetrics()
	client := backend.NewClient(api.URL, logger, backend.WithRecorder(metrics))
	pdf := &fakePDF{}

	router := NewRouter(RouterParams{
		Logger:              logger,
		Config:              cfg,
		Templates:           templates,
		SessionManager:      sessions,
		CSRFManager:         csrf,
		DashboardHandler:    dashboard.NewHandler(logger, client, templates, csrf),
		InventoryHandler:    inventory.NewHandler(logger, client, templates, csrf, sessions),
		TransactionsHandler: transactions.NewHandler(logger, client, templates, csrf),
		ReportsHandler:      reports.NewHandler(logger, client, templates, csrf, pdf),
		Metrics:             metrics,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &console{
		backend: fake,
		server:  srv,
		pdf:     pdf,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *console) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := c.client.Get(c.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (c *console) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := c.client.PostForm(c.server.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

var csrfMeta = regexp.MustCompile(`<meta name="csrf-token" content="([^"]+)">`)

// token loads the inventory page once so the session cookie and CSRF token exist.
func (c *console) token(t *testing.T) string {
	t.Helper()
	_, body := c.get(t, "/inventory")
	m := csrfMeta.FindStringSubmatch(body)
	require.Len(t, m, 2, "csrf meta tag missing")
	return m[1]
}

func itemForm(token string) url.Values {
	return url.Values{
		shared.CSRFFormField: {token},
		"name":               {"Nut"},
		"sku":                {"N-1"},
		"category":           {"Tools"},
		"price":              {"1.00"},
		"quantity":           {"10"},
	}
}

func TestHealthz(t *testing.T) {
	c := newConsole(t)
	resp, body := c.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestRootRedirectsToDashboard(t *testing.T) {
	c := newConsole(t)
	resp, _ := c.get(t, "/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestPostWithoutCSRFTokenIsForbidden(t *testing.T) {
	c := newConsole(t)
	c.token(t)
	form := itemForm("")
	form.Del(shared.CSRFFormField)

	resp, _ := c.post(t, "/inventory", form)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, c.backend.count("POST /api/inventory"))
}

func TestInventoryListRendersRows(t *testing.T) {
	c := newConsole(t)
	resp, body := c.get(t, "/inventory")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Bolt")
	assert.Contains(t, body, "₱12.50")
	assert.Contains(t, body, "stock-level-low")
	assert.Contains(t, body, "Low Stock")
	assert.Contains(t, resp.Header.Get("Content-Security-Policy"), "script-src 'self'")
}

func TestInventoryEmptyListShowsSinglePlaceholder(t *testing.T) {
	c := newConsole(t)
	c.backend.stub("GET /api/inventory", 0, `{"items":[]}`)

	_, body := c.get(t, "/inventory")
	assert.Equal(t, 1, strings.Count(body, `class="placeholder"`))
	assert.Contains(t, body, fmt.Sprintf(`colspan="%d"`, inventory.TableColumns))
	assert.Contains(t, body, "No inventory items found")
	assert.NotContains(t, body, "/edit")
}

func TestInventoryFiltersAreForwarded(t *testing.T) {
	c := newConsole(t)
	resp, body := c.get(t, "/inventory?search=bolt&category=Tools&stock_level=Low")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="bolt"`)
	assert.Contains(t, body, "Reset")
}

func TestAddDialogEchoesCategories(t *testing.T) {
	c := newConsole(t)
	_, body := c.get(t, "/inventory?modal=add")
	assert.Contains(t, body, "Add Inventory Item")
	assert.Contains(t, body, `name="known_category" value="Parts"`)
	assert.Contains(t, body, `name="known_category" value="Tools"`)
}

func TestAddItemWithMissingFieldNeverReachesBackend(t *testing.T) {
	c := newConsole(t)
	token := c.token(t)
	form := itemForm(token)
	form.Set("sku", "")
	form["known_category"] = []string{"Parts", "Tools"}
	before := c.backend.snapshot()

	resp, body := c.post(t, "/inventory", form)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, before, c.backend.snapshot(), "an invalid submit makes no backend call at all")
	assert.Contains(t, body, "alert-warning")
	assert.Contains(t, body, "Please fill in all required fields")
	assert.Contains(t, body, `value="Nut"`, "dialog keeps what the user typed")
	assert.Contains(t, body, `<option value="Parts">`, "category suggestions survive the re-render")
}

func TestEditItemWithMissingFieldNeverReachesBackend(t *testing.T) {
	c := newConsole(t)
	token := c.token(t)
	form := itemForm(token)
	form.Set("name", "")
	before := c.backend.snapshot()

	resp, body := c.post(t, "/inventory/1", form)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, before, c.backend.snapshot())
	assert.Contains(t, body, "Edit Inventory Item")
}

func TestAddItemSuccessRedirectsAndReloadsOnce(t *testing.T) {
	c := newConsole(t)
	token := c.token(t)
	listed := c.backend.count("GET /api/inventory")

	resp, _ := c.post(t, "/inventory", itemForm(token))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/inventory", resp.Header.Get("Location"))
	assert.Equal(t, 1, c.backend.count("POST /api/inventory"))
	assert.Equal(t, listed, c.backend.count("GET /api/inventory"), "POST must not reload the list")

	_, body := c.get(t, "/inventory")
	assert.Equal(t, listed+1, c.backend.count("GET /api/inventory"))
	assert.Contains(t, body, "alert-success")
	assert.Contains(t, body, "Inventory item added successfully")

	_, again := c.get(t, "/inventory")
	assert.NotContains(t, again, "Inventory item added successfully", "banners are shown once")
}

func TestAddItemRejectedShowsBackendMessage(t *testing.T) {
	c := newConsole(t)
	c.backend.stub("POST /api/inventory", http.StatusBadRequest, `{"error":"SKU already exists"}`)
	token := c.token(t)
	listed := c.backend.count("GET /api/inventory")

	resp, body := c.post(t, "/inventory", itemForm(token))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, listed, c.backend.count("GET /api/inventory"))
	assert.Contains(t, body, "alert-danger")
	assert.Contains(t, body, "Error adding item: SKU already exists")
	assert.Contains(t, body, `class="modal"`)
	assert.Contains(t, body, "Close the dialog to return to the item list")
}

func TestAddItemTransportFailureShowsGenericMessage(t *testing.T) {
	c := newConsole(t)
	c.backend.stub("POST /api/inventory", http.StatusInternalServerError, `<html>boom</html>`)
	token := c.token(t)

	resp, body := c.post(t, "/inventory", itemForm(token))
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "Error adding inventory item")
}

func TestDeleteItemRedirectsWithFilters(t *testing.T) {
	c := newConsole(t)
	token := c.token(t)

	resp, _ := c.post(t, "/inventory/1/delete", url.Values{
		shared.CSRFFormField: {token},
		"name":               {"Bolt"},
		"return":             {"category=Tools"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/inventory?category=Tools", resp.Header.Get("Location"))
	assert.Equal(t, 1, c.backend.count("DELETE /api/inventory/1"))
}

func TestRecordTransactionForwardsCSRFToken(t *testing.T) {
	c := newConsole(t)
	token := c.token(t)

	resp, _ := c.post(t, "/inventory/1/transactions", url.Values{
		shared.CSRFFormField: {token},
		"item_name":          {"Bolt"},
		"type":               {"in"},
		"quantity":           {"3"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()
	assert.Contains(t, c.backend.csrfTokens, token)
}

func TestRecordTransactionRejectsZeroQuantity(t *testing.T) {
	c := newConsole(t)
	token := c.token(t)

	resp, body := c.post(t, "/inventory/1/transactions", url.Values{
		shared.CSRFFormField: {token},
		"type":               {"out"},
		"quantity":           {"0"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Zero(t, c.backend.count("POST /api/transactions"))
	assert.Contains(t, body, "Please enter a valid quantity")
}

func TestEditDialogLoadsItem(t *testing.T) {
	c := newConsole(t)
	resp, body := c.get(t, "/inventory/1/edit?return=category%3DTools")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, c.backend.count("GET /api/inventory/1"))
	assert.Contains(t, body, "Edit Inventory Item")
	assert.Contains(t, body, `value="B-1"`)
	assert.Contains(t, body, `value="12.50"`)
	assert.Contains(t, body, `name="return" value="category=Tools"`)
}

func TestEditDialogShowsLoadFailure(t *testing.T) {
	c := newConsole(t)
	c.backend.stub("GET /api/inventory/{id}", http.StatusNotFound, `{"error":"Item not found"}`)

	resp, body := c.get(t, "/inventory/1/edit")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Error loading item: Item not found")
	assert.NotContains(t, body, `class="modal"`)
}

func TestUpdateItemSuccessReloadsOnceWithBanner(t *testing.T) {
	c := newConsole(t)
	token := c.token(t)
	listed := c.backend.count("GET /api/inventory")
	form := itemForm(token)
	form.Set("return", "search=bolt")

	resp, _ := c.post(t, "/inventory/1", form)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/inventory?search=bolt", resp.Header.Get("Location"))
	assert.Equal(t, 1, c.backend.count("PUT /api/inventory/1"))
	assert.Equal(t, listed, c.backend.count("GET /api/inventory"))

	_, body := c.get(t, resp.Header.Get("Location"))
	assert.Equal(t, listed+1, c.backend.count("GET /api/inventory"))
	assert.Equal(t, 1, strings.Count(body, "Inventory item updated successfully"))
}

func TestUpdateItemRejectedKeepsDialog(t *testing.T) {
	c := newConsole(t)
	c.backend.stub("PUT /api/inventory/{id}", http.StatusBadRequest, `{"error":"SKU already exists"}`)
	token := c.token(t)
	listed := c.backend.count("GET /api/inventory")

	resp, body := c.post(t, "/inventory/1", itemForm(token))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, listed, c.backend.count("GET /api/inventory"))
	assert.Equal(t, 1, strings.Count(body, "alert-danger"))
	assert.Contains(t, body, "Error updating item: SKU already exists")
	assert.Contains(t, body, "Edit Inventory Item")
}

func TestDeleteItemSuccessShowsBannerOnce(t *testing.T) {
	c := newConsole(t)
	token := c.token(t)
	listed := c.backend.count("GET /api/inventory")

	resp, _ := c.post(t, "/inventory/1/delete", url.Values{shared.CSRFFormField: {token}, "name": {"Bolt"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, listed, c.backend.count("GET /api/inventory"))

	_, body := c.get(t, "/inventory")
	assert.Equal(t, listed+1, c.backend.count("GET /api/inventory"))
	assert.Contains(t, body, "alert-success")
	assert.Equal(t, 1, strings.Count(body, "Inventory item deleted successfully"))
}

func TestDeleteItemFailures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		want    int
		message string
	}{
		{name: "rejected", status: http.StatusNotFound, body: `{"error":"Item not found"}`, want: http.StatusBadRequest, message: "Error deleting item: Item not found"},
		{name: "transport", status: http.StatusBadGateway, body: `<html>down</html>`, want: http.StatusBadGateway, message: "Error deleting inventory item"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newConsole(t)
			c.backend.stub("DELETE /api/inventory/{id}", tc.status, tc.body)
			token := c.token(t)
			listed := c.backend.count("GET /api/inventory")

			resp, body := c.post(t, "/inventory/1/delete", url.Values{shared.CSRFFormField: {token}, "name": {"Bolt"}})
			assert.Equal(t, tc.want, resp.StatusCode)
			assert.Equal(t, 1, c.backend.count("DELETE /api/inventory/1"))
			assert.Equal(t, listed, c.backend.count("GET /api/inventory"), "a failed delete does not reload")
			assert.Equal(t, 1, strings.Count(body, "alert-danger"))
			assert.Contains(t, body, tc.message)
			assert.Contains(t, body, "Delete Inventory Item")
		})
	}
}

func TestRecordTransactionSuccessShowsBanner(t *testing.T) {
	c := newConsole(t)
	token := c.token(t)
	listed := c.backend.count("GET /api/inventory")

	resp, _ := c.post(t, "/inventory/1/transactions", url.Values{
		shared.CSRFFormField: {token},
		"type":               {"in"},
		"quantity":           {"3"},
		"return":             {"stock_level=Low"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/inventory?stock_level=Low", resp.Header.Get("Location"))
	assert.Equal(t, listed, c.backend.count("GET /api/inventory"))

	_, body := c.get(t, resp.Header.Get("Location"))
	assert.Equal(t, listed+1, c.backend.count("GET /api/inventory"))
	assert.Equal(t, 1, strings.Count(body, "Transaction added successfully"))
}

func TestRecordTransactionFailures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		want    int
		message string
	}{
		{name: "rejected", status: http.StatusBadRequest, body: `{"error":"Insufficient stock"}`, want: http.StatusBadRequest, message: "Error: Insufficient stock"},
		{name: "transport", status: http.StatusInternalServerError, body: `oops`, want: http.StatusBadGateway, message: "Error adding transaction"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newConsole(t)
			c.backend.stub("POST /api/transactions", tc.status, tc.body)
			token := c.token(t)
			listed := c.backend.count("GET /api/inventory")

			resp, body := c.post(t, "/inventory/1/transactions", url.Values{
				shared.CSRFFormField: {token},
				"item_name":          {"Bolt"},
				"type":               {"out"},
				"quantity":           {"50"},
			})
			assert.Equal(t, tc.want, resp.StatusCode)
			assert.Equal(t, 1, c.backend.count("POST /api/transactions"))
			assert.Equal(t, listed, c.backend.count("GET /api/inventory"))
			assert.Equal(t, 1, strings.Count(body, "alert-danger"))
			assert.Contains(t, body, tc.message)
			assert.Contains(t, body, `value="50"`, "dialog keeps the quantity")
		})
	}
}

func TestRecordTransactionRejectsOverflowingQuantity(t *testing.T) {
	c := newConsole(t)
	token := c.token(t)
	before := c.backend.snapshot()

	resp, body := c.post(t, "/inventory/1/transactions", url.Values{
		shared.CSRFFormField: {token},
		"type":               {"in"},
		"quantity":           {"99999999999999999999"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, before, c.backend.snapshot())
	assert.Contains(t, body, "Please enter a valid quantity")
}

func TestInventoryListPagesAndSorts(t *testing.T) {
	c := newConsole(t)
	var items []string
	for i := 1; i <= 12; i++ {
		items = append(items, fmt.Sprintf(`{"id":%d,"name":"Item %02d","sku":"S-%02d","category":"Tools","price":%d,"quantity":%d}`, i, i, i, i, 20+i))
	}
	c.backend.stub("GET /api/inventory", 0, `{"items":[`+strings.Join(items, ",")+`]}`)

	_, first := c.get(t, "/inventory")
	assert.Contains(t, first, "Showing 1 to 10 of 12 entries")
	assert.Equal(t, 10, strings.Count(first, "data-item-id="))
	assert.Contains(t, first, `href="/inventory?page=2"`)

	_, second := c.get(t, "/inventory?page=2")
	assert.Contains(t, second, "Showing 11 to 12 of 12 entries")
	assert.Equal(t, 2, strings.Count(second, "data-item-id="))
	assert.Equal(t, "", c.backend.query("/api/inventory"), "paging is not sent to the backend")

	_, sorted := c.get(t, "/inventory?sort=price&dir=desc")
	assert.Less(t, strings.Index(sorted, "Item 12"), strings.Index(sorted, "Item 11"))
	assert.NotContains(t, sorted, "Item 01<")
}

func TestTransactionsNewestFirst(t *testing.T) {
	c := newConsole(t)
	resp, body := c.get(t, "/transactions")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Less(t, strings.Index(body, "Jan 3, 2024"), strings.Index(body, "Jan 1, 2024"))
	assert.Contains(t, body, "transaction-out")
}

func TestTransactionsForOneItem(t *testing.T) {
	c := newConsole(t)
	resp, body := c.get(t, "/transactions?item_id=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "item_id=1", c.backend.query("/api/transactions"))
	assert.Contains(t, body, "Show all items")
	assert.Contains(t, body, "Showing 1 to 2 of 2 entries")
}

func TestTransactionsLoadFailureOffersReload(t *testing.T) {
	c := newConsole(t)
	c.backend.stub("GET /api/transactions", http.StatusInternalServerError, `{"error":"boom"}`)

	_, body := c.get(t, "/transactions?item_id=1")
	assert.Contains(t, body, "Error loading transactions")
	assert.Contains(t, body, `href="/transactions?item_id=1"`)
	assert.NotContains(t, body, "Showing")
}

func TestDashboardKeepsCategoryOrder(t *testing.T) {
	c := newConsole(t)
	resp, body := c.get(t, "/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, c.backend.count("GET /api/dashboard"))
	assert.Equal(t, 1, c.backend.count("GET /api/reports/inventory_value"))
	assert.Less(t, strings.Index(body, "Zeta"), strings.Index(body, "Alpha"))
	assert.Contains(t, body, "₱1,500.00")
}

func TestDashboardSkipsValueChartWithoutCategories(t *testing.T) {
	c := newConsole(t)
	c.backend.stub("GET /api/dashboard", 0, `{"total_items":0,"total_value":0,"low_stock_items":0,"out_of_stock_items":0,"category_distribution":{},"recent_transactions":[]}`)

	resp, body := c.get(t, "/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, c.backend.count("GET /api/reports/inventory_value"))
	assert.Contains(t, body, "No data available")
}

func TestReportsExportCSV(t *testing.T) {
	c := newConsole(t)
	resp, body := c.get(t, "/reports/stock_levels.csv")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "Label,Value\nBolt,4\nNut,10\n", body)
}

func TestReportsExportPDF(t *testing.T) {
	c := newConsole(t)
	resp, body := c.get(t, "/reports/inventory_value.pdf")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, "%PDF-1.7", body)
	assert.Contains(t, c.pdf.last(), "Inventory Value by Category")
}

func TestReportsSwapChartPerType(t *testing.T) {
	c := newConsole(t)
	resp, body := c.get(t, "/reports/transaction_history")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<h1 id="report-title">Transaction History Summary</h1>`)
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, "<tr><td>Stock In</td><td>3</td></tr>")
	assert.Contains(t, body, `href="/reports/transaction_history.csv"`)

	_, body = c.get(t, "/reports/inventory_value")
	assert.Contains(t, body, `<h1 id="report-title">Inventory Value by Category</h1>`)
	assert.Contains(t, body, "<tr><td>Alpha</td><td>₱1,200.00</td></tr>")
}

func TestReportsUnknownTypeShowsBackendError(t *testing.T) {
	c := newConsole(t)
	resp, body := c.get(t, "/reports/bogus")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Error loading report: Invalid report type")
	assert.Equal(t, 1, c.backend.count("GET /api/reports/bogus"))
}

func TestReportsExportRejectsUnknownTypesLocally(t *testing.T) {
	c := newConsole(t)
	resp, _ := c.get(t, "/reports/bogus.csv")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
	assert.Zero(t, c.backend.count("GET /api/reports/bogus"))

	resp, _ = c.get(t, "/reports/stock_levels.xml")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Zero(t, c.backend.count("GET /api/reports/stock_levels"))
}

func TestUnknownPageRendersErrorTemplate(t *testing.T) {
	c := newConsole(t)
	resp, body := c.get(t, "/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "The page you requested does not exist.")
}

func TestMetricsCountBackendCalls(t *testing.T) {
	c := newConsole(t)
	c.get(t, "/inventory")
	_, body := c.get(t, "/metrics")
	assert.Contains(t, body, `inventory_web_backend_calls_total{endpoint="/api/inventory",method="GET",outcome="ok"} 1`)
}
