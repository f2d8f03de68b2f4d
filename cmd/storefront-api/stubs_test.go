package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Legend1hhh/storefront-api/internal/analytics"
	"github.com/Legend1hhh/storefront-api/internal/auth"
	"github.com/Legend1hhh/storefront-api/internal/cart"
	"github.com/Legend1hhh/storefront-api/internal/category"
	"github.com/Legend1hhh/storefront-api/internal/config"
	"github.com/Legend1hhh/storefront-api/internal/coupon"
	"github.com/Legend1hhh/storefront-api/internal/order"
	"github.com/Legend1hhh/storefront-api/internal/product"
	"github.com/Legend1hhh/storefront-api/internal/review"
	"github.com/Legend1hhh/storefront-api/internal/user"

	"github.com/gin-gonic/gin"
)

//
// ---------- IN-MEMORY STUB REPOS ----------
//

type stubUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*user.User
	byEmail map[string]*user.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: map[string]*user.User{}, byEmail: map[string]*user.User{}}
}

func (s *stubUserRepo) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return user.ErrAlreadyExist
	}
	cp := *u
	cp.CreatedAt = time.Now().UTC()
	s.byID[u.ID] = &cp
	s.byEmail[u.Email] = &cp
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) UpdateProfile(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.byID[u.ID]
	if !ok {
		return user.ErrNotFound
	}
	if u.FirstName != "" {
		cur.FirstName = u.FirstName
	}
	if u.LastName != "" {
		cur.LastName = u.LastName
	}
	if u.Phone != "" {
		cur.Phone = u.Phone
	}
	if u.Avatar != "" {
		cur.Avatar = u.Avatar
	}
	return nil
}

func (s *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	cur.PasswordHash = hash
	return nil
}

func (s *stubUserRepo) ListCustomers(_ context.Context, limit, offset int) ([]user.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []user.User
	for _, u := range s.byID {
		if u.Role == "customer" {
			out = append(out, *u)
		}
	}
	return out, len(out), nil
}

type stubProductRepo struct {
	mu        sync.Mutex
	byID      map[string]*product.Product
	lastQuery product.Query
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: map[string]*product.Product{}}
}

func (s *stubProductRepo) add(p product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	s.byID[p.ID] = &cp
}

func (s *stubProductRepo) List(_ context.Context, q product.Query) ([]product.Product, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuery = q
	out := make([]product.Product, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProductRepo) GetBySlug(_ context.Context, slug string) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.byID {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, product.ErrNotFound
}

func (s *stubProductRepo) Featured(_ context.Context, limit int) ([]product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []product.Product
	for _, p := range s.byID {
		if p.IsFeatured {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) NewArrivals(_ context.Context, limit int) ([]product.Product, error) {
	return s.Featured(context.Background(), limit)
}

func (s *stubProductRepo) Related(_ context.Context, id string, limit int) ([]product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return nil, product.ErrNotFound
	}
	return []product.Product{}, nil
}

type stubCategoryRepo struct{ cats []category.Category }

func (s *stubCategoryRepo) List(context.Context) ([]category.Category, error) {
	return s.cats, nil
}

func (s *stubCategoryRepo) GetBySlug(_ context.Context, slug string) (*category.Category, error) {
	for i := range s.cats {
		if s.cats[i].Slug == slug {
			return &s.cats[i], nil
		}
	}
	return nil, category.ErrNotFound
}

func (s *stubCategoryRepo) Tree(context.Context) ([]*category.Node, error) {
	return category.BuildTree(s.cats), nil
}

type stubCartRepo struct {
	mu     sync.Mutex
	byUser map[string]*cart.Cart
	gets   int
}

func newStubCartRepo() *stubCartRepo { return &stubCartRepo{byUser: map[string]*cart.Cart{}} }

func (s *stubCartRepo) Get(_ context.Context, userID string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	c, ok := s.byUser[userID]
	if !ok {
		return nil, cart.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubCartRepo) Upsert(_ context.Context, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.byUser[c.UserID] = &cp
	return nil
}

func (s *stubCartRepo) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
	return nil
}

// stubOrderRepo mirrors the production repository's compare-and-swap
// semantics: stock and coupon counters only move inside Create under a lock,
// so racing checkouts are decided here, not by the handler's read-side check.
type stubOrderRepo struct {
	mu         sync.Mutex
	stock      map[string]int // productID -> units
	couponMax  map[string]int // couponID -> max uses
	couponUses map[string]int
	orders     map[string]*order.Order
	items      map[string][]order.Item
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		stock:      map[string]int{},
		couponMax:  map[string]int{},
		couponUses: map[string]int{},
		orders:     map[string]*order.Order{},
		items:      map[string][]order.Item{},
	}
}

func (s *stubOrderRepo) Create(_ context.Context, o *order.Order, items []order.Item, couponID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range items {
		if s.stock[it.ProductID] < it.Quantity {
			return &order.InsufficientStockError{ProductName: it.Name}
		}
	}
	if couponID != "" {
		if max, ok := s.couponMax[couponID]; ok && s.couponUses[couponID] >= max {
			return order.ErrCouponSpent
		}
		s.couponUses[couponID]++
	}
	for _, it := range items {
		s.stock[it.ProductID] -= it.Quantity
	}

	cp := *o
	cp.CreatedAt = time.Now().UTC()
	s.orders[o.ID] = &cp
	s.items[o.ID] = append([]order.Item(nil), items...)
	return nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, id, userID string) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return nil, order.ErrNotFound
	}
	cp := *o
	cp.Items = append([]order.Item(nil), s.items[id]...)
	return &cp, nil
}

func (s *stubOrderRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]order.Order, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []order.Order
	for id, o := range s.orders {
		if o.UserID == userID {
			cp := *o
			cp.Items = append([]order.Item(nil), s.items[id]...)
			out = append(out, cp)
		}
	}
	return out, len(out), nil
}

func (s *stubOrderRepo) Cancel(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return order.ErrNotFound
	}
	if o.Status != order.StatusPending {
		return order.ErrNotCancellable
	}
	o.Status = order.StatusCancelled
	for _, it := range s.items[id] {
		s.stock[it.ProductID] += it.Quantity
	}
	return nil
}

type stubCouponRepo struct {
	mu     sync.Mutex
	byCode map[string]*coupon.Coupon
}

func newStubCouponRepo() *stubCouponRepo { return &stubCouponRepo{byCode: map[string]*coupon.Coupon{}} }

func (s *stubCouponRepo) GetByCode(_ context.Context, code string) (*coupon.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byCode[code]
	if !ok {
		return nil, coupon.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

type stubReviewRepo struct {
	mu        sync.Mutex
	reviews   []review.Review
	delivered map[string]bool // userID+"/"+productID
}

func newStubReviewRepo() *stubReviewRepo { return &stubReviewRepo{delivered: map[string]bool{}} }

func (s *stubReviewRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]review.Review, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []review.Review
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (s *stubReviewRepo) ListByUser(_ context.Context, userID string) ([]review.MyReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []review.MyReview
	for _, r := range s.reviews {
		if r.UserID == userID {
			out = append(out, review.MyReview{ID: r.ID, ProductID: r.ProductID, Rating: r.Rating, Title: r.Title, Comment: r.Comment})
		}
	}
	return out, nil
}

func (s *stubReviewRepo) Create(_ context.Context, rv *review.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rv
	cp.CreatedAt = time.Now().UTC()
	s.reviews = append(s.reviews, cp)
	return nil
}

func (s *stubReviewRepo) HasDeliveredOrder(_ context.Context, userID, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivered[userID+"/"+productID], nil
}

type stubAnalyticsRepo struct{}

func (stubAnalyticsRepo) Dashboard(context.Context, time.Time) (*analytics.Dashboard, error) {
	return &analytics.Dashboard{Revenue: "100.00", Orders: 2, Customers: 1, Products: 3}, nil
}

func (stubAnalyticsRepo) TopProducts(context.Context, int) ([]analytics.TopProduct, error) {
	return []analytics.TopProduct{}, nil
}

func (stubAnalyticsRepo) TopCustomers(context.Context, int) ([]analytics.TopCustomer, error) {
	return []analytics.TopCustomer{}, nil
}

//
// ---------- TEST WIRING ----------
//

type testEnv struct {
	router   *gin.Engine
	signer   *auth.Signer
	users    *stubUserRepo
	products *stubProductRepo
	carts    *stubCartRepo
	orders   *stubOrderRepo
	coupons  *stubCouponRepo
	reviews  *stubReviewRepo
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		signer:   auth.NewSigner("test-secret", time.Hour),
		users:    newStubUserRepo(),
		products: newStubProductRepo(),
		carts:    newStubCartRepo(),
		orders:   newStubOrderRepo(),
		coupons:  newStubCouponRepo(),
		reviews:  newStubReviewRepo(),
	}
	cfg := config.Config{Version: "test"}
	env.router = newRouter(cfg, env.signer, repos{
		users:      env.users,
		products:   env.products,
		categories: &stubCategoryRepo{},
		carts:      env.carts,
		orders:     env.orders,
		coupons:    env.coupons,
		reviews:    env.reviews,
		analytics:  stubAnalyticsRepo{},
	})
	return env
}

// token registers the user in the stub store and returns a bearer token.
func (e *testEnv) token(role string) (userID, bearer string) {
	userID = uuid.NewString()
	_ = e.users.Create(context.Background(), &user.User{
		ID:        userID,
		Email:     userID + "@test.local",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	})
	bearer, _ = e.signer.Sign(userID, userID+"@test.local", role)
	return userID, bearer
}

// do dispatches a JSON request through the router. body may be nil; bearer
// may be empty for public routes.
func (e *testEnv) do(t *testing.T, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	return env
}
