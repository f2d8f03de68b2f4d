package main

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Legend1hhh/storefront-api/internal/httpx"
	"github.com/Legend1hhh/storefront-api/internal/product"
)

func listProductsHandler(products product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := pageParams(c, 12)
		q := product.Query{
			CategorySlug: c.Query("category"),
			Search:       c.Query("search"),
			MinPrice:     c.Query("minPrice"),
			MaxPrice:     c.Query("maxPrice"),
			Featured:     c.Query("featured") == "true",
			Sort:         c.DefaultQuery("sort", "featured"),
			Limit:        limit,
			Offset:       offset,
		}

		items, total, err := products.List(c.Request.Context(), q)
		if err != nil {
			log.WithError(err).Error("product list failed")
			httpx.Error(c, 500, "Failed to fetch products")
			return
		}
		if items == nil {
			items = []product.Product{}
		}
		httpx.OK(c, httpx.NewPage(items, total, page, limit), "")
	}
}

func featuredProductsHandler(products product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := products.Featured(c.Request.Context(), 8)
		if err != nil {
			log.WithError(err).Error("featured products failed")
			httpx.Error(c, 500, "Failed to fetch featured products")
			return
		}
		httpx.OK(c, items, "")
	}
}

func newArrivalsHandler(products product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := products.NewArrivals(c.Request.Context(), 4)
		if err != nil {
			log.WithError(err).Error("new arrivals failed")
			httpx.Error(c, 500, "Failed to fetch new arrivals")
			return
		}
		httpx.OK(c, items, "")
	}
}

func productBySlugHandler(products product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := products.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if err == product.ErrNotFound {
				httpx.Error(c, 404, "Product not found")
				return
			}
			log.WithError(err).Error("product fetch failed")
			httpx.Error(c, 500, "Failed to fetch product")
			return
		}
		httpx.OK(c, p, "")
	}
}

func relatedProductsHandler(products product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		// the :slug segment carries the product id on this route
		id := c.Param("slug")
		items, err := products.Related(c.Request.Context(), id, 4)
		if err != nil {
			if err == product.ErrNotFound {
				httpx.Error(c, 404, "Product not found")
				return
			}
			log.WithError(err).Error("related products failed")
			httpx.Error(c, 500, "Failed to fetch related products")
			return
		}
		httpx.OK(c, items, "")
	}
}
