package main

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Legend1hhh/storefront-api/internal/category"
	"github.com/Legend1hhh/storefront-api/internal/httpx"
)

func listCategoriesHandler(categories category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := categories.List(c.Request.Context())
		if err != nil {
			log.WithError(err).Error("category list failed")
			httpx.Error(c, 500, "Failed to fetch categories")
			return
		}
		httpx.OK(c, out, "")
	}
}

func categoryTreeHandler(categories category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tree, err := categories.Tree(c.Request.Context())
		if err != nil {
			log.WithError(err).Error("category tree failed")
			httpx.Error(c, 500, "Failed to fetch category tree")
			return
		}
		if tree == nil {
			tree = []*category.Node{}
		}
		httpx.OK(c, tree, "")
	}
}

func categoryBySlugHandler(categories category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, err := categories.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if err == category.ErrNotFound {
				httpx.Error(c, 404, "Category not found")
				return
			}
			log.WithError(err).Error("category fetch failed")
			httpx.Error(c, 500, "Failed to fetch category")
			return
		}
		httpx.OK(c, cat, "")
	}
}
