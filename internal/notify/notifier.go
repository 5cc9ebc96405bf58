package notify

import (
	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"github.com/Nethupa05/Hardware-Backend/prometheus"
	"go.uber.org/zap"
)

// Notifier records stock and status events for later delivery. Delivery
// itself is out of scope; events are logged and counted.
type Notifier struct {
	log *zap.Logger
}

// NewNotifier creates a notifier backed by the given logger
func NewNotifier(log *zap.Logger) *Notifier {
	return &Notifier{log: log}
}

// LowStock records a low stock alert for a product
func (n *Notifier) LowStock(p *model.Product) {
	prometheus.RecordLowStockAlert()
	n.log.Warn("Low stock alert",
		zap.Uint("product_id", p.ID),
		zap.String("name", p.Name),
		zap.Int("stock", p.Stock),
		zap.Int("min_stock", p.MinStock))
}

// SupplierLowStock records a low stock report directed at a supplier
func (n *Notifier) SupplierLowStock(s *model.Supplier, products []model.Product, message string) {
	names := make([]string, 0, len(products))
	for i := range products {
		names = append(names, products[i].Name)
	}
	prometheus.RecordLowStockAlert()
	n.log.Warn("Supplier low stock notification",
		zap.Uint("supplier_id", s.ID),
		zap.String("supplier", s.Name),
		zap.String("email", s.Email),
		zap.Strings("products", names),
		zap.String("message", message))
}
