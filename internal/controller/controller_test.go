package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handloom_market/internal/middleware"
	"handloom_market/internal/model"
	"handloom_market/internal/repository"
	"handloom_market/internal/service"
	"handloom_market/pkg/database"
	"handloom_market/pkg/net"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 请求构造辅助 ====================

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func setupRepos(t *testing.T) *service.Repositories {
	t.Helper()
	repos := service.NewRepositories(repository.NewRecords(database.NewMemoryStore()))
	repos.Accounts.Save(context.Background(), []model.Account{
		{ID: "u_admin", Email: "admin@x.com", Password: "secret1", Role: model.RoleAdmin, Status: model.AccountActive, Name: "Admin"},
		{ID: "u_meera", Email: "meera@x.com", Password: "loom123", Role: model.RoleArtisan, Status: model.AccountActive, Name: "Meera Weaves"},
	})
	return repos
}

// ==================== 错误映射 ====================

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrAccountNotFound, http.StatusUnauthorized},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{&service.RoleMismatchError{Registered: model.RoleBuyer}, http.StatusUnauthorized},
		{service.ErrAccountInactive, http.StatusForbidden},
		{service.ErrNotOwner, http.StatusForbidden},
		{service.ErrProductNotFound, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", service.ErrOrderNotFound), http.StatusNotFound},
		{service.ErrEmailExists, http.StatusConflict},
		{service.ErrNameTaken, http.StatusConflict},
		{service.ErrCampaignEnded, http.StatusConflict},
		{service.ErrCartEmpty, http.StatusBadRequest},
		{service.ErrInvalidOrderStatus, http.StatusBadRequest},
		{fmt.Errorf("%w: 500", net.ErrCheckoutRejected), http.StatusPaymentRequired},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(ctx *gin.Context) { handleError(ctx, tt.err) })

			w := performRequest(r, http.MethodGet, "/x", nil)
			assert.Equal(t, tt.want, w.Code)
			env := decode(t, w)
			assert.Equal(t, tt.want, env.Code)
			assert.Equal(t, tt.err.Error(), env.Message)
		})
	}
}

// ==================== 登录 ====================

func TestAuthController_Login(t *testing.T) {
	repos := setupRepos(t)
	ctl := NewAuthController(service.NewSessionService(repos))
	r := gin.New()
	r.POST("/login", ctl.Login)
	r.GET("/session", ctl.Session)

	w := performRequest(r, http.MethodPost, "/login", gin.H{"email": "admin@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Message, "参数错误")

	w = performRequest(r, http.MethodPost, "/login", gin.H{"email": "meera@x.com", "password": "loom123", "role": "admin"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, decode(t, w).Message, model.RoleArtisan)

	w = performRequest(r, http.MethodGet, "/session", nil)
	var anon struct {
		Authenticated bool   `json:"authenticated"`
		Home          string `json:"home"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &anon))
	assert.False(t, anon.Authenticated)
	assert.Equal(t, service.LoginPath, anon.Home)

	w = performRequest(r, http.MethodPost, "/login", gin.H{"email": "Meera@X.com", "password": "loom123", "role": "artisan"})
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, 0, env.Code)
	var resp struct {
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "/artisan-dashboard", resp.Redirect)

	w = performRequest(r, http.MethodGet, "/session", nil)
	var sess struct {
		Authenticated bool   `json:"authenticated"`
		Role          string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &sess))
	assert.True(t, sess.Authenticated)
	assert.Equal(t, model.RoleArtisan, sess.Role)
}

func TestAuthController_SignupDuplicate(t *testing.T) {
	repos := setupRepos(t)
	ctl := NewAuthController(service.NewSessionService(repos))
	r := gin.New()
	r.POST("/signup", ctl.Signup)

	body := gin.H{"email": "admin@x.com", "password": "whatever", "name": "Dup", "role": "buyer"}
	w := performRequest(r, http.MethodPost, "/signup", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	body["role"] = "admin"
	w = performRequest(r, http.MethodPost, "/signup", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ==================== 前台 ====================

func newStore(repos *service.Repositories) *StoreController {
	return NewStoreController(
		service.NewCatalogService(repos, 5),
		service.NewCartService(repos),
		service.NewCheckoutService(repos, nil),
		service.NewFeedbackService(repos),
		service.NewSupportService(repos),
		service.NewCampaignService(repos),
	)
}

func TestStoreController_CartFlow(t *testing.T) {
	repos := setupRepos(t)
	ctl := newStore(repos)
	r := gin.New()
	r.POST("/cart/items", ctl.AddToCart)
	r.POST("/cart/checkout", ctl.Checkout)
	r.GET("/products/:id", ctl.GetProduct)

	w := performRequest(r, http.MethodPost, "/cart/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(r, http.MethodGet, "/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(r, http.MethodPost, "/cart/items", gin.H{"productId": "999"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(r, http.MethodPost, "/cart/items", gin.H{"productId": "1"})
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodPost, "/cart/checkout", gin.H{"buyerName": "Asha", "email": "asha@x.com", "address": "Pune"})
	require.Equal(t, http.StatusOK, w.Code)
	var order model.Order
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &order))
	assert.Equal(t, 8500.0, order.Total)
	assert.Empty(t, repos.Cart.Get(context.Background()))
}

// ==================== 手艺人 ====================

func TestArtisanController_ProductsScopedToActor(t *testing.T) {
	repos := setupRepos(t)
	sessions := service.NewSessionService(repos)
	catalog := service.NewCatalogService(repos, 5)
	ctl := NewArtisanController(sessions, service.NewArtisanService(repos, catalog, 5), catalog, service.NewNotificationService(repos, 5))

	r := gin.New()
	r.Use(func(ctx *gin.Context) {
		user := &model.SessionUser{Email: "meera@x.com", Role: model.RoleArtisan, Name: "Meera Weaves"}
		ctx.Set(middleware.ContextKeyUser, user)
		ctx.Request = ctx.Request.WithContext(middleware.WithSessionUser(ctx.Request.Context(), user))
		ctx.Next()
	})
	r.GET("/products", ctl.Products)
	r.PATCH("/products/:id", ctl.UpdateProduct)

	w := performRequest(r, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	assert.Equal(t, 2, page.Total)

	// 商品 3 属于 Valley Looms
	w = performRequest(r, http.MethodPatch, "/products/3", gin.H{"price": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(r, http.MethodPatch, "/products/1", gin.H{"stock": 0})
	require.Equal(t, http.StatusOK, w.Code)
	var p model.Product
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &p))
	assert.Equal(t, model.ProductOutOfStock, p.Status)
}

func TestArtisanController_NoSession(t *testing.T) {
	repos := setupRepos(t)
	catalog := service.NewCatalogService(repos, 5)
	ctl := NewArtisanController(service.NewSessionService(repos), service.NewArtisanService(repos, catalog, 5), catalog, service.NewNotificationService(repos, 5))
	r := gin.New()
	r.GET("/dashboard", ctl.Dashboard)

	w := performRequest(r, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
