package shared

import "time"

// AlertKind selects the banner colour.
type AlertKind string

// Banner kinds understood by the layout.
const (
	AlertSuccess AlertKind = "success"
	AlertInfo    AlertKind = "info"
	AlertWarning AlertKind = "warning"
	AlertDanger  AlertKind = "danger"
)

// AlertLifetime is how long a banner stays on screen before it removes itself.
const AlertLifetime = 5 * time.Second

// Alert is a dismissible notification shown at the top of the main content.
type Alert struct {
	Kind    AlertKind `json:"kind"`
	Message string    `json:"message"`
}

// DismissAfterMillis feeds the data-dismiss-after attribute.
func (a Alert) DismissAfterMillis() int64 {
	return AlertLifetime.Milliseconds()
}

// AlertStack collects the banners of one page render. Every push lands on top
// and nothing is deduplicated.
type AlertStack struct {
	items []Alert
}

// Push inserts a banner above the ones already stacked.
func (s *AlertStack) Push(kind AlertKind, message string) {
	s.items = append([]Alert{{Kind: kind, Message: message}}, s.items...)
}

// PushAll stacks alerts in their original order, so the last one ends on top.
func (s *AlertStack) PushAll(alerts []Alert) {
	for _, a := range alerts {
		s.Push(a.Kind, a.Message)
	}
}

// Items returns the banners newest first.
func (s *AlertStack) Items() []Alert {
	if s == nil {
		return nil
	}
	out := make([]Alert, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports how many banners are stacked.
func (s *AlertStack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// CollectAlerts drains the session banners and stacks the ones raised while
// handling the current request on top of them.
func CollectAlerts(sess *Session, raised ...Alert) []Alert {
	var stack AlertStack
	if sess != nil {
		stack.PushAll(sess.PopAlerts())
	}
	stack.PushAll(raised)
	return stack.Items()
}
