package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/niels/tinyhttp/pkg/httperr"
	"github.com/niels/tinyhttp/pkg/logging"
)

// OrdersFile is the name of the record document inside the data directory
const OrdersFile = "orders.json"

// OrderRecord is one business record from the data store
type OrderRecord struct {
	OrderID     int    `json:"order_id"`
	OrderDate   string `json:"order_date"`
	OrderStatus string `json:"order_status"`
}

// Orders reads the order document from a data directory
type Orders struct {
	dir string
}

// NewOrders creates an order lookup rooted at dir
func NewOrders(dir string) *Orders {
	return &Orders{dir: dir}
}

// Path returns the full path of the order document
func (o *Orders) Path() string {
	return filepath.Join(o.dir, OrdersFile)
}

// LoadOrders reads and decodes the whole document on every call.
// Failures carry the httperr.DataStoreUnavailable kind.
func (o *Orders) LoadOrders() ([]OrderRecord, error) {
	path := o.Path()

	data, err := os.ReadFile(path)
	if err != nil {
		logging.ErrorWith("Failed to read order document", map[string]interface{}{
			"path":  path,
			"error": err,
		})
		return nil, httperr.New(httperr.DataStoreUnavailable, fmt.Errorf("failed to read %s: %w", path, err))
	}

	var orders []OrderRecord
	if err := json.Unmarshal(data, &orders); err != nil {
		logging.ErrorWith("Failed to parse order document", map[string]interface{}{
			"path":  path,
			"error": err,
		})
		return nil, httperr.New(httperr.DataStoreUnavailable, fmt.Errorf("failed to parse %s: %w", path, err))
	}
	if orders == nil {
		orders = []OrderRecord{}
	}

	logging.DebugWith("Loaded orders", map[string]interface{}{
		"path":  path,
		"count": len(orders),
	})
	return orders, nil
}
