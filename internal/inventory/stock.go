package inventory

// StockLevel buckets an item's quantity.
type StockLevel int

// Stock levels. The thresholds are fixed.
const (
	LevelOut StockLevel = iota
	LevelLow
	LevelNormal
)

// LowStockThreshold is the highest quantity still reported as low.
const LowStockThreshold = 10

// Classify maps a quantity onto its stock level.
func Classify(quantity int) StockLevel {
	switch {
	case quantity <= 0:
		return LevelOut
	case quantity <= LowStockThreshold:
		return LevelLow
	default:
		return LevelNormal
	}
}

func (l StockLevel) String() string {
	switch l {
	case LevelOut:
		return "out"
	case LevelLow:
		return "low"
	default:
		return "normal"
	}
}

// Badge is the label shown in the status column.
func (l StockLevel) Badge() string {
	switch l {
	case LevelOut:
		return "Out of Stock"
	case LevelLow:
		return "Low Stock"
	default:
		return "In Stock"
	}
}

// Class is the CSS class of the status badge.
func (l StockLevel) Class() string {
	return "stock-level-" + l.String()
}
