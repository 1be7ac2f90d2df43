package enums

import "fmt"

// StockChangeType distinguishes the direction of an inventory adjustment.
type StockChangeType string

const (
	StockChangeIncrement StockChangeType = "increment"
	StockChangeDecrement StockChangeType = "decrement"
)

var validStockChangeTypes = []StockChangeType{
	StockChangeIncrement,
	StockChangeDecrement,
}

// IsValid checks whether the given type matches the canonical enum.
func (s StockChangeType) IsValid() bool {
	for _, candidate := range validStockChangeTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (s StockChangeType) String() string {
	return string(s)
}

// ParseStockChangeType converts raw strings into StockChangeType.
func ParseStockChangeType(value string) (StockChangeType, error) {
	for _, candidate := range validStockChangeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock change type %q", value)
}
