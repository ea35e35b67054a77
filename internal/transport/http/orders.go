package rest

import (
	"net/http"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/pkg/httpx"
	"github.com/gin-gonic/gin"
)

// orderID: id заказа из пути; false означает, что ответ уже отправлен.
func (h *Handler) orderID(c *gin.Context) (int64, bool) {
	id, ok := httpx.PathInt64(c, "id")
	if !ok {
		h.respondError(c, domain.InvalidInput(domain.MsgInvalidOrderID))
	}
	return id, ok
}

func (h *Handler) listOrders(c *gin.Context) {
	q, err := parseListQuery(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	page, err := h.svc.Orders.ListOrders(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	orders := page.Orders
	if orders == nil {
		orders = []domain.OrderSummary{}
	}
	respond(c, http.StatusOK, "Orders retrieved successfully", orders, page.Meta)
}

func (h *Handler) getOrder(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}
	order, err := h.svc.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, "Order retrieved successfully", order)
}

func (h *Handler) createOrder(c *gin.Context) {
	var req createOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		h.respondError(c, err)
		return
	}
	order, err := h.svc.Orders.CreateOrder(c.Request.Context(), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondCreated(c, "Order created successfully", order)
}

func (h *Handler) updateOrder(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}
	var req updateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.svc.Orders.UpdateOrder(c.Request.Context(), id, toLines(req.Products))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, "Order updated successfully", order)
}

func (h *Handler) deleteOrder(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}
	if err := h.svc.Orders.DeleteOrder(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, "Order deleted successfully", nil)
}
