package api

import (
	"fstore-be/internal/cart"
	"fstore-be/internal/category"
	"fstore-be/internal/food"
	"fstore-be/internal/metrics"
	"fstore-be/internal/order"
	"fstore-be/internal/user"
	"fstore-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	UserSvc     user.Service
	CategorySvc category.Service
	FoodSvc     food.Service
	CartSvc     cart.Service
	OrderSvc    order.Service
	Metrics     *metrics.Registry
}

// NewRouter registers every route. Everything under /api except
// registration requires an authenticated caller.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", h.Health)
	r.GET("/metrics", h.MetricsSnapshot)

	api := r.Group("/api")
	api.POST("/users/register", h.Register)

	authed := api.Group("", h.requireUser)
	{
		authed.POST("/orders", h.MakeOrder)
		authed.GET("/orders", h.GetOrders)
		authed.GET("/orders/:id", h.GetOrder)
		authed.PUT("/orders/:id", h.UpdateOrder)
		authed.DELETE("/orders/:id", h.DeleteOrder)
		authed.POST("/orders/:id/feedback", h.Feedback)

		authed.GET("/carts", h.GetCart)
		authed.POST("/carts", h.AddToCart)
		authed.PUT("/carts/:id", h.UpdateCart)
		authed.DELETE("/carts/:id", h.RemoveFromCart)

		authed.GET("/foods", h.ListFoods)
		authed.GET("/foods/:id", h.GetFood)
		authed.GET("/categories", h.ListCategories)
	}

	admin := authed.Group("", h.requireAdmin)
	{
		admin.POST("/foods", h.CreateFood)
		admin.DELETE("/foods/:id", h.DeleteFood)
		admin.POST("/categories", h.CreateCategory)
		admin.GET("/reports/customers", h.CustomerReport)
	}

	return r
}

const userKey = "auth_user"

// requireUser resolves the caller once per request and stores it for the
// handlers.
func (h *Handler) requireUser(c *gin.Context) {
	u, err := h.UserSvc.GetAuthorizedUser(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Set(userKey, u)
	c.Next()
}

func (h *Handler) requireAdmin(c *gin.Context) {
	if !currentUser(c).IsAdmin() {
		respondError(c, errAdminOnly)
		return
	}
	c.Next()
}

func currentUser(c *gin.Context) *user.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*user.User)
	return u
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil || id == 0 {
		respondError(c, errInvalidID)
		return 0, false
	}
	return id, true
}
