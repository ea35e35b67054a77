package rest

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.svc.Customers.ListCustomers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, "Customers retrieved successfully", toCustomerViews(customers))
}

func (h *Handler) createCustomer(c *gin.Context) {
	var req createCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.svc.Customers.CreateCustomer(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondCreated(c, "Customer created successfully", customerView(*customer))
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.svc.Products.ListProducts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, "Products retrieved successfully", toProductViews(products))
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	price, err := req.price()
	if err != nil {
		h.respondError(c, err)
		return
	}
	product, err := h.svc.Products.CreateProduct(c.Request.Context(), req.Name, price)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondCreated(c, "Product created successfully", productView(*product))
}
