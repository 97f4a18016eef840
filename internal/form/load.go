package form

import (
	"github.com/odyssey-erp/inventory-web/internal/backend"
	"github.com/odyssey-erp/inventory-web/internal/shared"
)

// LoadAlert returns the danger banner for a failed page load. Rejections show
// rejectedPrefix followed by the backend text; transport failures show generic.
func LoadAlert[T any](res backend.Result[T], rejectedPrefix, generic string) (shared.Alert, bool) {
	switch {
	case res.OK():
		return shared.Alert{}, false
	case res.Rejected() && rejectedPrefix != "":
		return shared.Alert{Kind: shared.AlertDanger, Message: rejectedPrefix + res.Message}, true
	default:
		return shared.Alert{Kind: shared.AlertDanger, Message: generic}, true
	}
}
