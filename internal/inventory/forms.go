package inventory

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/inventory-web/internal/backend"
	"github.com/odyssey-erp/inventory-web/internal/form"
)

// ItemForm holds the add/edit dialog fields as typed by the user.
type ItemForm struct {
	Name        string `validate:"required"`
	SKU         string `validate:"required"`
	Description string
	Category    string `validate:"required"`
	Price       string `validate:"required"`
	Quantity    string `validate:"required"`
}

// TransactionForm holds the stock movement dialog fields.
type TransactionForm struct {
	ItemID   string `validate:"required"`
	ItemName string
	Type     string `validate:"required,oneof=in out"`
	Quantity string `validate:"number"`
	Notes    string
}

// Banner texts per dialog.
var (
	addMessages = form.Messages{
		Success:        "Inventory item added successfully",
		RejectedPrefix: "Error adding item: ",
		Failure:        "Error adding inventory item",
	}
	editMessages = form.Messages{
		Success:        "Inventory item updated successfully",
		RejectedPrefix: "Error updating item: ",
		Failure:        "Error updating inventory item",
	}
	deleteMessages = form.Messages{
		Success:        "Inventory item deleted successfully",
		RejectedPrefix: "Error deleting item: ",
		Failure:        "Error deleting inventory item",
	}
	transactionMessages = form.Messages{
		Success:        "Transaction added successfully",
		RejectedPrefix: "Error: ",
		Failure:        "Error adding transaction",
	}
)

func parseItemForm(r *http.Request) ItemForm {
	return ItemForm{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		SKU:         strings.TrimSpace(r.PostFormValue("sku")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Category:    strings.TrimSpace(r.PostFormValue("category")),
		Price:       strings.TrimSpace(r.PostFormValue("price")),
		Quantity:    strings.TrimSpace(r.PostFormValue("quantity")),
	}
}

// knownCategories reads the category names a dialog echoes back in hidden
// fields, dropping blanks and repeats.
func knownCategories(r *http.Request) []string {
	raw := r.PostForm["known_category"]
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func itemFormFrom(item backend.InventoryItem) ItemForm {
	return ItemForm{
		Name:        item.Name,
		SKU:         item.SKU,
		Description: item.Description,
		Category:    item.Category,
		Price:       item.Price.StringFixed(2),
		Quantity:    strconv.Itoa(item.Quantity),
	}
}

// Validate checks required fields, then that price and quantity are
// non-negative numbers.
func (f ItemForm) Validate() error {
	if err := form.Struct(f, form.MsgRequiredFields); err != nil {
		return err
	}
	if _, err := f.price(); err != nil {
		return form.Invalidf(form.MsgInvalidPrice, "Price")
	}
	if _, err := f.quantity(); err != nil {
		return form.Invalidf(form.MsgInvalidQuantity, "Quantity")
	}
	return nil
}

// Input converts validated fields into the backend body.
func (f ItemForm) Input() backend.ItemInput {
	price, _ := f.price()
	qty, _ := f.quantity()
	return backend.ItemInput{
		Name:        f.Name,
		SKU:         f.SKU,
		Description: f.Description,
		Category:    f.Category,
		Price:       price,
		Quantity:    qty,
	}
}

func (f ItemForm) price() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(f.Price)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, strconv.ErrRange
	}
	return d, nil
}

func (f ItemForm) quantity() (int, error) {
	n, err := strconv.Atoi(f.Quantity)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func parseTransactionForm(r *http.Request, itemID string) TransactionForm {
	return TransactionForm{
		ItemID:   itemID,
		ItemName: strings.TrimSpace(r.PostFormValue("item_name")),
		Type:     r.PostFormValue("type"),
		Quantity: strings.TrimSpace(r.PostFormValue("quantity")),
		Notes:    strings.TrimSpace(r.PostFormValue("notes")),
	}
}

// Validate requires a positive whole quantity and a known movement type.
func (f TransactionForm) Validate() error {
	if err := form.Struct(f, form.MsgInvalidQuantity); err != nil {
		return err
	}
	if _, err := f.quantity(); err != nil {
		return form.Invalidf(form.MsgInvalidQuantity, "Quantity")
	}
	return nil
}

// Input converts validated fields into the backend body.
func (f TransactionForm) Input() backend.TransactionInput {
	qty, _ := f.quantity()
	return backend.TransactionInput{
		ItemID:   backend.ID(f.ItemID),
		Type:     backend.TransactionType(f.Type),
		Quantity: qty,
		Notes:    f.Notes,
	}
}

func (f TransactionForm) quantity() (int, error) {
	n, err := strconv.Atoi(f.Quantity)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
