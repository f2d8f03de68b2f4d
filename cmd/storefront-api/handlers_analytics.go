package main

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Legend1hhh/storefront-api/internal/analytics"
	"github.com/Legend1hhh/storefront-api/internal/httpx"
)

func dashboardHandler(stats analytics.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		since := analytics.PeriodStart(c.DefaultQuery("period", "month"), time.Now())

		d, err := stats.Dashboard(c.Request.Context(), since)
		if err != nil {
			log.WithError(err).Error("dashboard failed")
			httpx.Error(c, 500, "Failed to fetch dashboard stats")
			return
		}
		if d.ChartData == nil {
			d.ChartData = []analytics.ChartPoint{}
		}
		httpx.OK(c, d, "")
	}
}

func topProductsHandler(stats analytics.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

		out, err := stats.TopProducts(c.Request.Context(), limit)
		if err != nil {
			log.WithError(err).Error("top products failed")
			httpx.Error(c, 500, "Failed to fetch top products")
			return
		}
		if out == nil {
			out = []analytics.TopProduct{}
		}
		httpx.OK(c, out, "")
	}
}

func topCustomersHandler(stats analytics.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

		out, err := stats.TopCustomers(c.Request.Context(), limit)
		if err != nil {
			log.WithError(err).Error("top customers failed")
			httpx.Error(c, 500, "Failed to fetch top customers")
			return
		}
		if out == nil {
			out = []analytics.TopCustomer{}
		}
		httpx.OK(c, out, "")
	}
}
