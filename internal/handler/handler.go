// Package handler holds the gin controllers for the REST surface.
package handler

import (
	"strconv"

	"hardwarehub-be/internal/apperr"
	"hardwarehub-be/internal/cart"
	"hardwarehub-be/internal/catalog"
	"hardwarehub-be/internal/middleware"
	"hardwarehub-be/internal/notify"
	"hardwarehub-be/internal/order"
	"hardwarehub-be/internal/product"
	"hardwarehub-be/internal/report"
	"hardwarehub-be/internal/servicerequest"
	"hardwarehub-be/internal/user"
	"hardwarehub-be/internal/utils"

	"github.com/gin-gonic/gin"
)

var ErrInvalidID = apperr.Validation("invalid id")

type Handler struct {
	users    user.Service
	products product.Service
	carts    cart.Service
	orders   order.Service
	requests servicerequest.Service
	catalog  catalog.Service
	reports  report.Service
	ws       *notify.WSServer
}

type Deps struct {
	Users           user.Service
	Products        product.Service
	Carts           cart.Service
	Orders          order.Service
	ServiceRequests servicerequest.Service
	Catalog         catalog.Service
	Reports         report.Service
	WS              *notify.WSServer
}

func New(d Deps) *Handler {
	return &Handler{
		users:    d.Users,
		products: d.Products,
		carts:    d.Carts,
		orders:   d.Orders,
		requests: d.ServiceRequests,
		catalog:  d.Catalog,
		reports:  d.Reports,
		ws:       d.WS,
	}
}

// Routes mounts every route on api. Authentication middleware must already
// be installed on the engine.
func (h *Handler) Routes(api *gin.RouterGroup) {
	authed := middleware.RequireAuth()
	admin := middleware.RequireAdmin()

	a := api.Group("/auth")
	a.POST("/register", h.Register)
	a.POST("/login", h.Login)
	a.GET("/me", authed, h.Me)

	p := api.Group("/products")
	p.GET("", h.ListProducts)
	p.GET("/categories", h.ProductCategories)
	p.GET("/suggestions", h.ProductSuggestions)
	p.GET("/low-stock", admin, h.LowStockProducts)
	p.GET("/:id", h.GetProduct)
	p.POST("", admin, h.CreateProduct)
	p.PUT("/:id", admin, h.UpdateProduct)
	p.DELETE("/:id", admin, h.DeleteProduct)

	c := api.Group("/cart", authed)
	c.GET("", h.GetCart)
	c.POST("", h.AddCartItem)
	c.DELETE("", h.ClearCart)
	c.PUT("/:productId", h.UpdateCartItem)
	c.DELETE("/:productId", h.RemoveCartItem)

	o := api.Group("/orders", authed)
	o.GET("", h.ListOrders)
	o.POST("", h.CreateOrder)
	o.GET("/stats", admin, h.OrderStats)
	o.GET("/:id", h.GetOrder)
	o.PUT("/:id", admin, h.UpdateOrderStatus)
	o.PUT("/:id/cancel", h.CancelOrder)
	o.PUT("/:id/tracking", admin, h.UpdateOrderTracking)

	sr := api.Group("/service-requests", authed)
	sr.GET("", admin, h.ListServiceRequests)
	sr.POST("", h.CreateServiceRequest)
	sr.GET("/user", h.ListMyServiceRequests)
	sr.GET("/:id", h.GetServiceRequest)
	sr.PUT("/:id", admin, h.UpdateServiceRequest)
	sr.PUT("/:id/cancel", h.CancelServiceRequest)
	sr.DELETE("/:id", admin, h.DeleteServiceRequest)

	h.registerCatalog(api.Group("/service-types"), catalog.KindServiceType, admin)
	h.registerCatalog(api.Group("/equipment-types"), catalog.KindEquipmentType, admin)

	r := api.Group("/reports", admin)
	r.GET("/sales", h.SalesReport)
	r.GET("/services", h.ServiceReport)
	r.GET("/dashboard", h.DashboardReport)

	api.GET("/ws", authed, h.Subscribe)
}

func (h *Handler) registerCatalog(g *gin.RouterGroup, kind catalog.Kind, admin gin.HandlerFunc) {
	g.GET("", h.listCatalog(kind))
	g.POST("", admin, h.createCatalog(kind))
	g.GET("/:id", h.getCatalog(kind))
	g.PUT("/:id", admin, h.updateCatalog(kind))
	g.DELETE("/:id", admin, h.deleteCatalog(kind))
}

// caller returns the authenticated identity. Routes using it sit behind
// RequireAuth.
func caller(c *gin.Context) (uint, bool) {
	who, _ := utils.IdentityFrom(c.Request.Context())
	return who.UserID, who.IsAdmin()
}

func paramID(c *gin.Context, name string) (uint, error) {
	id, err := utils.ToUint(c.Param(name))
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

func queryInt(c *gin.Context, name string) int {
	n, _ := strconv.Atoi(c.Query(name))
	return n
}

func queryBool(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}
