package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/Legend1hhh/storefront-api/internal/cart"
	"github.com/Legend1hhh/storefront-api/internal/coupon"
	"github.com/Legend1hhh/storefront-api/internal/httpx"
	"github.com/Legend1hhh/storefront-api/internal/order"
	"github.com/Legend1hhh/storefront-api/internal/pricing"
	"github.com/Legend1hhh/storefront-api/internal/product"
)

// newOrderNumber derives the human-readable number from the current time.
func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
}

func listOrdersHandler(orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := httpx.User(c)
		page, limit, offset := pageParams(c, 10)

		out, total, err := orders.ListByUser(c.Request.Context(), claims.UserID, limit, offset)
		if err != nil {
			log.WithError(err).Error("order list failed")
			httpx.Error(c, 500, "Failed to fetch orders")
			return
		}
		if out == nil {
			out = []order.Order{}
		}
		httpx.OK(c, httpx.NewPage(out, total, page, limit), "")
	}
}

func getOrderHandler(orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := httpx.User(c)
		o, err := orders.GetByID(c.Request.Context(), c.Param("id"), claims.UserID)
		if err != nil {
			if err == order.ErrNotFound {
				httpx.Error(c, 404, "Order not found")
				return
			}
			log.WithError(err).Error("order fetch failed")
			httpx.Error(c, 500, "Failed to fetch order")
			return
		}
		httpx.OK(c, o, "")
	}
}

// createOrderHandler runs the checkout sequence: re-read authoritative
// prices and stock, resolve the coupon against the fresh subtotal, compute
// totals, then hand the whole write set to the repository's transaction.
// Client-supplied prices are never trusted.
func createOrderHandler(orders order.Repository, products product.Repository,
	coupons coupon.Repository, carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := httpx.User(c)

		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Error(c, 400, "invalid JSON body")
			return
		}
		if len(req.Items) == 0 {
			httpx.Error(c, 400, "No items in order")
			return
		}

		ctx := c.Request.Context()
		subtotal := decimal.Zero
		items := make([]order.Item, 0, len(req.Items))
		lines := make([]pricing.Item, 0, len(req.Items))

		for _, reqItem := range req.Items {
			if reqItem.Quantity < 1 {
				httpx.Error(c, 400, "Item quantity must be at least 1")
				return
			}
			p, err := products.GetByID(ctx, reqItem.ProductID)
			if err != nil {
				httpx.Error(c, 400, fmt.Sprintf("Product not found: %s", reqItem.ProductID))
				return
			}
			if p.Quantity < reqItem.Quantity {
				httpx.Error(c, 409, fmt.Sprintf("Insufficient stock for %s", p.Name))
				return
			}
			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				log.WithError(err).WithField("product", p.ID).Error("bad catalog price")
				httpx.Error(c, 500, "Failed to create order")
				return
			}
			subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(reqItem.Quantity))))
			lines = append(lines, pricing.Item{UnitPrice: price, Quantity: reqItem.Quantity})
			items = append(items, order.Item{
				ID:        uuid.NewString(),
				ProductID: p.ID,
				Name:      p.Name,
				Price:     price.StringFixed(2),
				Quantity:  reqItem.Quantity,
			})
		}

		discount := decimal.Zero
		couponID := ""
		if req.CouponCode != "" {
			cp, err := coupons.GetByCode(ctx, req.CouponCode)
			if err != nil {
				httpx.Error(c, 400, "Invalid or expired coupon code")
				return
			}
			if err := cp.Eligible(subtotal, time.Now()); err != nil {
				httpx.Error(c, 400, err.Error())
				return
			}
			discount = pricing.Discount(cp.Type, cp.Value, subtotal)
			couponID = cp.ID
		}

		totals := pricing.ComputeTotals(lines, discount)

		o := &order.Order{
			ID:              uuid.NewString(),
			OrderNumber:     newOrderNumber(),
			UserID:          claims.UserID,
			Status:          order.StatusPending,
			PaymentStatus:   "pending",
			ShippingStatus:  "pending",
			Subtotal:        totals.Subtotal.StringFixed(2),
			Tax:             totals.Tax.StringFixed(2),
			Shipping:        totals.Shipping.StringFixed(2),
			Discount:        totals.Discount.StringFixed(2),
			Total:           totals.Total.StringFixed(2),
			ShippingAddress: req.ShippingAddress,
			BillingAddress:  req.BillingAddress,
			CouponCode:      req.CouponCode,
			Notes:           req.Notes,
		}

		if err := orders.Create(ctx, o, items, couponID); err != nil {
			var stockErr *order.InsufficientStockError
			switch {
			case errors.As(err, &stockErr):
				httpx.Error(c, 409, fmt.Sprintf("Insufficient stock for %s", stockErr.ProductName))
			case errors.Is(err, order.ErrCouponSpent):
				httpx.Error(c, 409, "Coupon has reached maximum uses")
			default:
				log.WithError(err).Error("order create failed")
				httpx.Error(c, 500, "Failed to create order")
			}
			return
		}

		// best effort: the order exists even if the cart mirror lingers
		if err := carts.Clear(ctx, claims.UserID); err != nil {
			log.WithError(err).Warn("cart clear after checkout failed")
		}

		httpx.Created(c, gin.H{"order": order.CreatedResponse{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			Total:       o.Total,
			Status:      o.Status,
		}}, "Order created successfully")
	}
}

func cancelOrderHandler(orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := httpx.User(c)
		err := orders.Cancel(c.Request.Context(), c.Param("id"), claims.UserID)
		switch {
		case err == nil:
			httpx.OK(c, nil, "Order cancelled successfully")
		case errors.Is(err, order.ErrNotFound):
			httpx.Error(c, 404, "Order not found")
		case errors.Is(err, order.ErrNotCancellable):
			httpx.Error(c, 400, "Order cannot be cancelled")
		default:
			log.WithError(err).Error("order cancel failed")
			httpx.Error(c, 500, "Failed to cancel order")
		}
	}
}
