package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/dto/response"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// OrderHandler handles sales order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// orderItemReq is the wire shape of an order line
type orderItemReq struct {
	PeptideID uuid.UUID `json:"peptide_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
	UnitPrice float64   `json:"unit_price"`
}

func toItemInputs(items []orderItemReq) []service.OrderItemInput {
	inputs := make([]service.OrderItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.OrderItemInput{
			PeptideID: item.PeptideID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return inputs
}

// Create handles creating a draft order
func (h *OrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		ClientID        *uuid.UUID     `json:"client_id"`
		RepID           *uuid.UUID     `json:"rep_id"`
		DeliveryMethod  string         `json:"delivery_method"`
		ShippingAddress *string        `json:"shipping_address"`
		Notes           *string        `json:"notes"`
		OrderSource     string         `json:"order_source"`
		WooOrderID      *int64         `json:"woo_order_id"`
		Items           []orderItemReq `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	input := &service.CreateOrderInput{
		ClientID:        req.ClientID,
		RepID:           req.RepID,
		DeliveryMethod:  enum.DeliveryMethod(req.DeliveryMethod),
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		OrderSource:     enum.OrderSource(req.OrderSource),
		WooOrderID:      req.WooOrderID,
		Items:           toItemInputs(req.Items),
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles retrieving a single order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// List handles listing orders (supports both page-based and cursor-based pagination)
func (h *OrderHandler) List(c *gin.Context) {
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c)
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
		ClientID:   optionalUUIDQuery(c, "client_id"),
		RepID:      optionalUUIDQuery(c, "rep_id"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if raw := c.Query("status"); raw != "" {
		status := enum.OrderStatus(raw)
		params.Status = &status
	}
	if raw := c.Query("payment_status"); raw != "" {
		status := enum.PaymentStatus(raw)
		params.PaymentStatus = &status
	}
	if raw := c.Query("shipping_status"); raw != "" {
		status := enum.ShippingStatus(raw)
		params.ShippingStatus = &status
	}
	params.StartDate, params.EndDate = dateRangeQuery(c)

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

func (h *OrderHandler) listWithCursor(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	params := &repository.OrderCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    c.Query("cursor"),
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     limit,
		},
		Search:   c.Query("search"),
		ClientID: optionalUUIDQuery(c, "client_id"),
		RepID:    optionalUUIDQuery(c, "rep_id"),
	}
	if raw := c.Query("status"); raw != "" {
		status := enum.OrderStatus(raw)
		params.Status = &status
	}
	if raw := c.Query("payment_status"); raw != "" {
		status := enum.PaymentStatus(raw)
		params.PaymentStatus = &status
	}
	params.StartDate, params.EndDate = dateRangeQuery(c)

	result, err := h.orderService.ListOrdersWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Orders retrieved successfully", result)
}

// EditItems handles replacing an order's line items
func (h *OrderHandler) EditItems(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req struct {
		Items []orderItemReq `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	order, err := h.orderService.EditItems(c.Request.Context(), *id, toItemInputs(req.Items))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order items updated successfully", order)
}

// UpdateStatus handles transitioning an order through its lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.orderService.UpdateStatus(c.Request.Context(), *id, enum.OrderStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", nil)
}

// MarkPaid handles recording an external payment against an order
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	order, err := h.orderService.MarkPaid(c.Request.Context(), *id, req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order marked as paid", order)
}

// PayWithCredit handles settling an order from the caller's store credit
func (h *OrderHandler) PayWithCredit(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.PayWithCredit(c.Request.Context(), *id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order paid with store credit", order)
}

// Fulfill handles allocating stock and closing out an order
func (h *OrderHandler) Fulfill(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req struct {
		Force bool `json:"force"`
	}
	// Body is optional; fulfillment without a body means no override
	_ = c.ShouldBindJSON(&req)

	order, err := h.orderService.FulfillOrder(c.Request.Context(), *id, *userID, req.Force)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order fulfilled successfully", order)
}

// Delete handles deleting a draft or cancelled order
func (h *OrderHandler) Delete(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), *id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order deleted successfully", nil)
}

// ExportCSV streams the filtered order book as a CSV download
func (h *OrderHandler) ExportCSV(c *gin.Context) {
	params := &repository.OrderFilterParams{
		Search:   c.Query("search"),
		ClientID: optionalUUIDQuery(c, "client_id"),
		RepID:    optionalUUIDQuery(c, "rep_id"),
	}
	if raw := c.Query("status"); raw != "" {
		status := enum.OrderStatus(raw)
		params.Status = &status
	}
	if raw := c.Query("payment_status"); raw != "" {
		status := enum.PaymentStatus(raw)
		params.PaymentStatus = &status
	}
	params.StartDate, params.EndDate = dateRangeQuery(c)

	csv, err := h.orderService.ExportCSV(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := "orders-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "text/csv", []byte(csv))
}

// dateRangeQuery parses optional start_date/end_date query params (RFC 3339
// or plain dates)
func dateRangeQuery(c *gin.Context) (*time.Time, *time.Time) {
	parse := func(raw string) *time.Time {
		if raw == "" {
			return nil
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return &t
		}
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return &t
		}
		return nil
	}
	return parse(c.Query("start_date")), parse(c.Query("end_date"))
}
