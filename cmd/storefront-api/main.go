package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	_ "github.com/Legend1hhh/storefront-api/docs"
	"github.com/Legend1hhh/storefront-api/internal/analytics"
	"github.com/Legend1hhh/storefront-api/internal/auth"
	"github.com/Legend1hhh/storefront-api/internal/cart"
	"github.com/Legend1hhh/storefront-api/internal/category"
	"github.com/Legend1hhh/storefront-api/internal/config"
	"github.com/Legend1hhh/storefront-api/internal/coupon"
	"github.com/Legend1hhh/storefront-api/internal/db"
	"github.com/Legend1hhh/storefront-api/internal/order"
	"github.com/Legend1hhh/storefront-api/internal/product"
	"github.com/Legend1hhh/storefront-api/internal/review"
	"github.com/Legend1hhh/storefront-api/internal/user"
)

// @title Storefront API
// @version 1.0
// @description E-commerce storefront backend: catalog, cart, checkout, reviews and admin analytics.
// @BasePath /
func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	if cfg.BootstrapSchema {
		if err := db.Bootstrap(ctx, pool); err != nil {
			log.WithError(err).Fatal("schema bootstrap failed")
		}
	}

	signer := auth.NewSigner(cfg.JWTSecret, cfg.JWTTTL)

	rp := repos{
		users:      user.NewPGRepo(pool),
		products:   product.NewPGRepo(pool),
		categories: category.NewPGRepo(pool),
		carts:      cart.NewPGRepo(pool),
		orders:     order.NewPGRepo(pool),
		coupons:    coupon.NewPGRepo(pool),
		reviews:    review.NewPGRepo(pool),
		analytics:  analytics.NewPGRepo(pool),
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(cfg, signer, rp),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr).Info("storefront-api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
