package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Gunvolt24/rapid_express/internal/ports"
	"github.com/Gunvolt24/rapid_express/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// HomeMessage: ответ корневого маршрута.
const HomeMessage = "Rapid Express API v1.0"

// Services: прикладные сервисы, которые обслуживает HTTP-слой.
type Services struct {
	Orders    ports.OrderService
	Auth      ports.AuthService
	Users     ports.UserService
	Customers ports.CustomerService
	Products  ports.ProductService
}

// Handler: обработчики HTTP поверх прикладных сервисов.
type Handler struct {
	svc          Services
	log          ports.Logger
	timeout      time.Duration // лимит на обработку запроса; 0: без лимита
	secureCookie bool
}

func NewHandler(svc Services, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{svc: svc, log: log, timeout: timeout}
}

// WithSecureCookie: cookie сессии только по HTTPS.
func (h *Handler) WithSecureCookie(secure bool) *Handler {
	h.secureCookie = secure
	return h
}

// NewRouter: маршруты API. otelServiceName включает otelgin (пустая строка: без трейсинга).
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.MetricsMiddleware())
	r.Use(httpx.RequestLogger(h.log))
	r.Use(h.deadline())

	r.NoRoute(func(c *gin.Context) { respond(c, http.StatusNotFound, "Route not found", nil, nil) })
	r.NoMethod(func(c *gin.Context) { respond(c, http.StatusMethodNotAllowed, "Method not allowed", nil, nil) })

	r.GET("/", func(c *gin.Context) { respondOK(c, HomeMessage, nil) })
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/signup", h.signup)
	r.POST("/login", h.login)

	authed := r.Group("/", h.requireAuth())
	authed.POST("/logout", h.logout)

	users := authed.Group("/users")
	users.GET("", h.listUsers)
	users.GET("/:id", h.getUser)
	users.POST("", h.createUser)
	users.PUT("/:id", h.updateUser)
	users.DELETE("/:id", h.deleteUser)

	authed.GET("/customers", h.listCustomers)
	authed.POST("/customers", h.createCustomer)

	authed.GET("/products", h.listProducts)
	authed.POST("/products", h.createProduct)

	orders := authed.Group("/orders")
	orders.GET("", h.listOrders)
	orders.GET("/:id", h.getOrder)
	orders.POST("", h.createOrder)
	orders.PUT("/:id", h.updateOrder)
	orders.DELETE("/:id", h.deleteOrder)

	return r
}

// deadline: ограничивает контекст запроса: хранилище и кэш получают таймаут из него.
func (h *Handler) deadline() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
