package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	accountmemory "github.com/voltshop/storefront-api/internal/domains/accounts/adapters/memory"
	accounttoken "github.com/voltshop/storefront-api/internal/domains/accounts/adapters/token"
	accountapp "github.com/voltshop/storefront-api/internal/domains/accounts/application"
	catalogmemory "github.com/voltshop/storefront-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/voltshop/storefront-api/internal/domains/catalog/application"
	ordercatalog "github.com/voltshop/storefront-api/internal/domains/orders/adapters/catalog"
	ordermemory "github.com/voltshop/storefront-api/internal/domains/orders/adapters/memory"
	orderapp "github.com/voltshop/storefront-api/internal/domains/orders/application"
	reportingaccounts "github.com/voltshop/storefront-api/internal/domains/reporting/adapters/accounts"
	reportingapp "github.com/voltshop/storefront-api/internal/domains/reporting/application"
)

type testEnv struct {
	router   *gin.Engine
	catalog  *catalogmemory.Repository
	accounts *accountapp.Service
}

func newTestEnv(t *testing.T, middleware ...gin.HandlerFunc) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := accounttoken.NewJWTIssuer([]byte("test-secret"), time.Hour)
	accountService := accountapp.NewService(accountmemory.NewRepository(), tokens)

	catalogRepo := catalogmemory.NewRepository()
	catalogService := catalogapp.NewService(catalogRepo)

	orderRepo := ordermemory.NewRepository(catalogRepo)
	orderService := orderapp.NewService(orderRepo, ordercatalog.NewGateway(catalogService))

	reportingService := reportingapp.NewService(orderRepo, reportingaccounts.NewDirectory(accountService))

	responder := NewResponder("test")
	router := NewRouter(Handlers{
		Accounts:  NewAccountsAPI(accountService, responder),
		Products:  NewProductsAPI(catalogService, responder),
		Orders:    NewOrdersAPI(orderService, nil, accountService, responder),
		Dashboard: NewDashboardAPI(reportingService, responder),
		Auth:      NewAuthMiddleware(tokens, accountService, responder),
	}, middleware...)
	return &testEnv{router: router, catalog: catalogRepo, accounts: accountService}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its bearer token and id.
func (e *testEnv) register(t *testing.T, name, email string) (string, string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name": name, "email": email, "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var payload struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload.Token, payload.ID
}

// registerAdmin creates an account and grants it the admin role through the
// service layer, since no HTTP surface can mint the first admin.
func (e *testEnv) registerAdmin(t *testing.T, name, email string) string {
	t.Helper()
	token, id := e.register(t, name, email)
	accountID, err := uuid.Parse(id)
	require.NoError(t, err)
	_, err = e.accounts.SetRole(context.Background(), accountID, true)
	require.NoError(t, err)
	return token
}

func (e *testEnv) seedProduct(t *testing.T, adminToken string, price float64, stock int) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/products", adminToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = e.do(t, http.MethodPut, "/api/products/"+created.ID, adminToken, map[string]any{
		"name": "Ultrabook", "price": price, "countInStock": stock, "brand": "Volt",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return created.ID
}

func shippingPayload() map[string]string {
	return map[string]string{
		"address": "14 Harbour Lane", "town": "Brighton", "county": "East Sussex",
		"postalCode": "BN1 3QA", "phone": "07700900123",
	}
}

func TestRouterMiddlewareWrapsRegisteredRoutes(t *testing.T) {
	marker := func(c *gin.Context) {
		c.Header("X-Trace-Marker", "seen")
		c.Next()
	}
	env := newTestEnv(t, marker)

	for _, path := range []string{"/", "/api/products"} {
		rec := env.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.Equal(t, "seen", rec.Header().Get("X-Trace-Marker"), path)
	}
}

func TestRoutesRejectMissingToken(t *testing.T) {
	env := newTestEnv(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/users/profile"},
		{http.MethodPost, "/api/orders"},
		{http.MethodGet, "/api/orders/myorders"},
		{http.MethodGet, "/api/dashboard"},
	} {
		rec := env.do(t, route.method, route.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
		require.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
	}
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "Norma", "norma@example.com")

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/products"},
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/dashboard"},
	} {
		rec := env.do(t, route.method, route.path, token, nil)
		require.Equal(t, http.StatusForbidden, rec.Code, route.path)
	}
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	env := newTestEnv(t)
	_, _ = env.register(t, "Ada", "ada@example.com")

	rec := env.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "ada@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)

	rec = env.do(t, http.MethodGet, "/api/users/profile", session.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "ada@example.com")

	rec = env.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	env := newTestEnv(t)
	_, _ = env.register(t, "Ada", "ada@example.com")

	rec := env.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name": "Imposter", "email": "ada@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckoutFulfillmentFlow(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerAdmin(t, "Root", "root@example.com")
	buyerToken, _ := env.register(t, "Ada", "ada@example.com")
	productID := env.seedProduct(t, adminToken, 60, 5)

	rec := env.do(t, http.MethodPost, "/api/orders", buyerToken, map[string]any{
		"items":           []map[string]any{{"productId": productID, "qty": 2}},
		"shippingAddress": shippingPayload(),
		"paymentMethod":   "PayPal",
		"totalPrice":      138.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var placed struct {
		ID         string  `json:"id"`
		GrandTotal float64 `json:"grandTotal"`
		Tax        float64 `json:"tax"`
		IsPaid     bool    `json:"isPaid"`
		Purchaser  struct {
			Name string `json:"name"`
		} `json:"purchaser"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))
	require.Equal(t, 138.0, placed.GrandTotal)
	require.Equal(t, 18.0, placed.Tax)
	require.False(t, placed.IsPaid)
	require.Equal(t, "Ada", placed.Purchaser.Name)

	// Stock was decremented with the order.
	rec = env.do(t, http.MethodGet, "/api/products/"+productID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"countInStock":3`)

	// Strangers cannot read the order; the purchaser and admins can.
	strangerToken, _ := env.register(t, "Eve", "eve@example.com")
	rec = env.do(t, http.MethodGet, "/api/orders/"+placed.ID, strangerToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(t, http.MethodGet, "/api/orders/"+placed.ID, buyerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Pay, then deliver (admin only).
	rec = env.do(t, http.MethodPut, "/api/orders/"+placed.ID+"/pay", buyerToken, map[string]string{
		"reference": "PAY-1", "status": "COMPLETED", "emailAddress": "ada@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"isPaid":true`)

	rec = env.do(t, http.MethodPut, "/api/orders/"+placed.ID+"/deliver", buyerToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(t, http.MethodPut, "/api/orders/"+placed.ID+"/deliver", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"isDelivered":true`)

	// The ledger shows up on the dashboard.
	rec = env.do(t, http.MethodGet, "/api/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dashboard struct {
		Summary struct {
			TotalOrders      int     `json:"totalOrders"`
			DeliveredOrders  int     `json:"deliveredOrders"`
			DeliveredRevenue float64 `json:"deliveredRevenue"`
		} `json:"summary"`
		Orders []struct {
			PurchaserName string `json:"purchaserName"`
		} `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))
	require.Equal(t, 1, dashboard.Summary.TotalOrders)
	require.Equal(t, 1, dashboard.Summary.DeliveredOrders)
	require.Equal(t, 138.0, dashboard.Summary.DeliveredRevenue)
	require.Equal(t, "Ada", dashboard.Orders[0].PurchaserName)
}

func TestCheckoutRejectsOversell(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerAdmin(t, "Root", "root@example.com")
	buyerToken, _ := env.register(t, "Ada", "ada@example.com")
	productID := env.seedProduct(t, adminToken, 20, 1)

	rec := env.do(t, http.MethodPost, "/api/orders", buyerToken, map[string]any{
		"items":           []map[string]any{{"productId": productID, "qty": 3}},
		"shippingAddress": shippingPayload(),
		"paymentMethod":   "Payment on Delivery",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// Nothing was persisted and stock is untouched.
	rec = env.do(t, http.MethodGet, "/api/orders/myorders", buyerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", rec.Body.String())
	rec = env.do(t, http.MethodGet, "/api/products/"+productID, "", nil)
	require.Contains(t, rec.Body.String(), `"countInStock":1`)
}

func TestDeliveringCashOrderSettlesPayment(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerAdmin(t, "Root", "root@example.com")
	buyerToken, _ := env.register(t, "Ada", "ada@example.com")
	productID := env.seedProduct(t, adminToken, 20, 5)

	rec := env.do(t, http.MethodPost, "/api/orders", buyerToken, map[string]any{
		"items":           []map[string]any{{"productId": productID, "qty": 1}},
		"shippingAddress": shippingPayload(),
		"paymentMethod":   "Payment on Delivery",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var placed struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))

	rec = env.do(t, http.MethodPut, "/api/orders/"+placed.ID+"/deliver", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"isPaid":true`)
	require.Contains(t, rec.Body.String(), `"isDelivered":true`)

	rec = env.do(t, http.MethodPut, "/api/orders/"+placed.ID+"/deliver", adminToken, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeliveringGatewayOrderLeavesItUnpaid(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerAdmin(t, "Root", "root@example.com")
	buyerToken, _ := env.register(t, "Ada", "ada@example.com")
	productID := env.seedProduct(t, adminToken, 20, 5)

	rec := env.do(t, http.MethodPost, "/api/orders", buyerToken, map[string]any{
		"items":           []map[string]any{{"productId": productID, "qty": 1}},
		"shippingAddress": shippingPayload(),
		"paymentMethod":   "PayPal",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var placed struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))

	// Delivery settles nothing for gateway orders: the payment still has to
	// come through the callback.
	rec = env.do(t, http.MethodPut, "/api/orders/"+placed.ID+"/deliver", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"isDelivered":true`)
	require.Contains(t, rec.Body.String(), `"isPaid":false`)
}

func TestDashboardSplitsPendingAndUnpaidRevenue(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerAdmin(t, "Root", "root@example.com")
	buyerToken, _ := env.register(t, "Ada", "ada@example.com")
	productID := env.seedProduct(t, adminToken, 20, 5)

	// One order left unpaid, one paid but not yet delivered.
	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodPost, "/api/orders", buyerToken, map[string]any{
			"items":           []map[string]any{{"productId": productID, "qty": 1}},
			"shippingAddress": shippingPayload(),
			"paymentMethod":   "PayPal",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	rec := env.do(t, http.MethodGet, "/api/orders/myorders", buyerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []struct {
		ID         string  `json:"id"`
		GrandTotal float64 `json:"grandTotal"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 2)
	rec = env.do(t, http.MethodPut, "/api/orders/"+mine[0].ID+"/pay", buyerToken, map[string]string{
		"reference": "PAY-1", "status": "COMPLETED", "emailAddress": "ada@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dashboard struct {
		Summary struct {
			PendingOrders    int     `json:"pendingOrders"`
			PendingRevenue   float64 `json:"pendingRevenue"`
			CancelledOrders  int     `json:"cancelledOrders"`
			CancelledRevenue float64 `json:"cancelledRevenue"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))
	// 20 items + 10 shipping + 3 tax per order.
	require.Equal(t, 1, dashboard.Summary.PendingOrders)
	require.Equal(t, 33.0, dashboard.Summary.PendingRevenue)
	require.Equal(t, 1, dashboard.Summary.CancelledOrders)
	require.Equal(t, 33.0, dashboard.Summary.CancelledRevenue)
}

func TestReviewConflictOnRepeat(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerAdmin(t, "Root", "root@example.com")
	buyerToken, _ := env.register(t, "Ada", "ada@example.com")
	productID := env.seedProduct(t, adminToken, 20, 5)

	rec := env.do(t, http.MethodPost, "/api/products/"+productID+"/reviews", buyerToken, map[string]any{
		"rating": 4, "comment": "solid",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), `"numReviews":1`)

	rec = env.do(t, http.MethodPost, "/api/products/"+productID+"/reviews", buyerToken, map[string]any{
		"rating": 1, "comment": "changed my mind",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/products/"+productID, "", nil)
	require.Contains(t, rec.Body.String(), `"numReviews":1`)
	require.Contains(t, rec.Body.String(), `"rating":4`)
}

func TestAdminSelfDeleteRejected(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerAdmin(t, "Root", "root@example.com")

	rec := env.do(t, http.MethodGet, "/api/users/profile", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))

	rec = env.do(t, http.MethodDelete, "/api/users/"+profile.ID, adminToken, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	_, otherID := env.register(t, "Ada", "ada@example.com")
	rec = env.do(t, http.MethodDelete, "/api/users/"+otherID, adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}
