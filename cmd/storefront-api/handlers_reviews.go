package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Legend1hhh/storefront-api/internal/httpx"
	"github.com/Legend1hhh/storefront-api/internal/product"
	"github.com/Legend1hhh/storefront-api/internal/review"
)

func productReviewsHandler(reviews review.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := pageParams(c, 10)

		out, total, err := reviews.ListByProduct(c.Request.Context(), c.Param("productId"), limit, offset)
		if err != nil {
			log.WithError(err).Error("review list failed")
			httpx.Error(c, 500, "Failed to fetch reviews")
			return
		}
		if out == nil {
			out = []review.Review{}
		}
		httpx.OK(c, httpx.NewPage(out, total, page, limit), "")
	}
}

func createReviewHandler(reviews review.Repository, products product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := httpx.User(c)
		var req struct {
			ProductID string   `json:"productId"`
			Rating    int      `json:"rating"`
			Title     string   `json:"title"`
			Comment   string   `json:"comment"`
			Images    []string `json:"images"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Error(c, 400, "invalid JSON body")
			return
		}
		if req.ProductID == "" || req.Rating == 0 || req.Title == "" || req.Comment == "" {
			httpx.Error(c, 400, "Please provide all required fields")
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			httpx.Error(c, 400, "Rating must be between 1 and 5")
			return
		}
		if _, err := products.GetByID(c.Request.Context(), req.ProductID); err != nil {
			httpx.Error(c, 404, "Product not found")
			return
		}

		verified, err := reviews.HasDeliveredOrder(c.Request.Context(), claims.UserID, req.ProductID)
		if err != nil {
			log.WithError(err).Error("verified purchase check failed")
			httpx.Error(c, 500, "Failed to create review")
			return
		}

		if req.Images == nil {
			req.Images = []string{}
		}
		rv := &review.Review{
			ID:         uuid.NewString(),
			ProductID:  req.ProductID,
			UserID:     claims.UserID,
			Rating:     req.Rating,
			Title:      req.Title,
			Comment:    req.Comment,
			Images:     req.Images,
			IsVerified: verified,
		}
		if err := reviews.Create(c.Request.Context(), rv); err != nil {
			log.WithError(err).Error("review create failed")
			httpx.Error(c, 500, "Failed to create review")
			return
		}
		httpx.Created(c, rv, "Review created successfully")
	}
}

func myReviewsHandler(reviews review.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := httpx.User(c)
		out, err := reviews.ListByUser(c.Request.Context(), claims.UserID)
		if err != nil {
			log.WithError(err).Error("my reviews failed")
			httpx.Error(c, 500, "Failed to fetch reviews")
			return
		}
		if out == nil {
			out = []review.MyReview{}
		}
		httpx.OK(c, out, "")
	}
}
