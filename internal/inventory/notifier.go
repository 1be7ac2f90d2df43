package inventory

import "context"

// Notifier receives low stock alerts after an adjustment commits. Delivery is
// best-effort: implementations must not assume the caller waits for them, and
// their errors never reach the adjustment path.
type Notifier interface {
	NotifyLowStock(ctx context.Context, alert LowStockAlert) error
}
