package handler

import (
	"encoding/json"

	"github.com/niels/tinyhttp/pkg/request"
	"github.com/niels/tinyhttp/pkg/response"
)

// OrderNamespace is the service segment under which orders are published
const OrderNamespace = "air"

// WebService serves order records as JSON under /api/air/orders
type WebService struct {
	files  FileLoader
	orders OrderLoader
}

// NewWebService creates a WebService handler
func NewWebService(files FileLoader, orders OrderLoader) *WebService {
	return &WebService{files: files, orders: orders}
}

// Handle answers /<any>/air/orders with the full order list. Paths of any
// other shape, including ones too short to index, get 404. An unreadable
// order document gets 500.
func (h *WebService) Handle(req *request.Request) *response.Response {
	segments := req.Resource.Segments()
	if len(segments) < 4 || segments[2] != OrderNamespace || segments[3] != "orders" {
		return ErrorPage(h.files, response.StatusNotFound)
	}
	if h.orders == nil {
		return ErrorPage(h.files, response.StatusInternalServerError)
	}

	orders, err := h.orders.LoadOrders()
	if err != nil {
		return ErrorPage(h.files, response.StatusInternalServerError)
	}

	body, err := json.Marshal(orders)
	if err != nil {
		return ErrorPage(h.files, response.StatusInternalServerError)
	}

	header := map[string]string{"Content-Type": "application/json"}
	return response.New(response.StatusOK, header, string(body))
}
