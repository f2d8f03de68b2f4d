package main

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Legend1hhh/storefront-api/internal/analytics"
	"github.com/Legend1hhh/storefront-api/internal/auth"
	"github.com/Legend1hhh/storefront-api/internal/cart"
	"github.com/Legend1hhh/storefront-api/internal/category"
	"github.com/Legend1hhh/storefront-api/internal/config"
	"github.com/Legend1hhh/storefront-api/internal/coupon"
	"github.com/Legend1hhh/storefront-api/internal/httpx"
	"github.com/Legend1hhh/storefront-api/internal/order"
	"github.com/Legend1hhh/storefront-api/internal/product"
	"github.com/Legend1hhh/storefront-api/internal/review"
	"github.com/Legend1hhh/storefront-api/internal/user"
)

type repos struct {
	users      user.Repository
	products   product.Repository
	categories category.Repository
	carts      cart.Repository
	orders     order.Repository
	coupons    coupon.Repository
	reviews    review.Repository
	analytics  analytics.Repository
}

// newRouter registers all middleware and routes. Registration happens once
// at startup; the route table is immutable afterwards.
func newRouter(cfg config.Config, signer *auth.Signer, rp repos) *gin.Engine {
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(), httpx.Recovery(), httpx.CORS())

	r.GET("/health", healthHandler(cfg.Version))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// public
	r.POST("/auth/register", registerHandler(rp.users, signer))
	r.POST("/auth/login", loginHandler(rp.users, signer))
	r.POST("/auth/forgot-password", forgotPasswordHandler())

	r.GET("/products", listProductsHandler(rp.products))
	r.GET("/products/featured", featuredProductsHandler(rp.products))
	r.GET("/products/new-arrivals", newArrivalsHandler(rp.products))
	r.GET("/products/:slug", productBySlugHandler(rp.products))
	r.GET("/products/:slug/related", relatedProductsHandler(rp.products))

	r.GET("/categories", listCategoriesHandler(rp.categories))
	r.GET("/categories/tree", categoryTreeHandler(rp.categories))
	r.GET("/categories/:slug", categoryBySlugHandler(rp.categories))

	r.GET("/reviews/product/:productId", productReviewsHandler(rp.reviews))

	// authenticated
	authed := r.Group("", httpx.Auth(signer))
	{
		authed.GET("/auth/profile", profileHandler(rp.users))
		authed.PUT("/auth/profile", updateProfileHandler(rp.users))
		authed.PUT("/auth/change-password", changePasswordHandler(rp.users))

		authed.GET("/cart", getCartHandler(rp.carts))
		authed.POST("/cart/sync", syncCartHandler(rp.carts))
		authed.DELETE("/cart", clearCartHandler(rp.carts))

		authed.GET("/orders", listOrdersHandler(rp.orders))
		authed.GET("/orders/:id", getOrderHandler(rp.orders))
		authed.POST("/orders", createOrderHandler(rp.orders, rp.products, rp.coupons, rp.carts))
		authed.POST("/orders/:id/cancel", cancelOrderHandler(rp.orders))

		authed.POST("/coupons/validate", validateCouponHandler(rp.coupons))

		authed.POST("/reviews", createReviewHandler(rp.reviews, rp.products))
		authed.GET("/reviews/my", myReviewsHandler(rp.reviews))

		authed.GET("/users/:id", getUserHandler(rp.users))
	}

	// admin
	admin := r.Group("", httpx.Auth(signer), httpx.AdminOnly())
	{
		admin.GET("/users", listUsersHandler(rp.users))
		admin.GET("/analytics/dashboard", dashboardHandler(rp.analytics))
		admin.GET("/analytics/top-products", topProductsHandler(rp.analytics))
		admin.GET("/analytics/top-customers", topCustomersHandler(rp.analytics))
	}

	// fallback, same envelope as every other error
	r.NoRoute(func(c *gin.Context) {
		httpx.Error(c, 404, "Not Found")
	})
	return r
}

// healthHandler responds without the envelope, matching the probe contract.
func healthHandler(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   version,
		})
	}
}

// pageParams reads page/limit query values with a per-endpoint default limit.
func pageParams(c *gin.Context, defLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.Query("limit"))
	if limit <= 0 || limit > 100 {
		limit = defLimit
	}
	return page, limit, (page - 1) * limit
}
