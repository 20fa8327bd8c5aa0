package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/middleware"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func signToken(t *testing.T, claims jwt.RegisteredClaims, method jwt.SigningMethod) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(issuer string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(testSecret, issuer))
	r.GET("/whoami", func(c *gin.Context) {
		ownerID, _ := middleware.GetOwnerIDFromContext(c)
		ctxOwner, _ := middleware.OwnerIDFromCtx(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"owner": ownerID, "ctxOwner": ctxOwner})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := jwt.RegisteredClaims{
		Subject:   "owner-1",
		Issuer:    "messflow-auth",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	noSubject := valid
	noSubject.Subject = ""
	otherIssuer := valid
	otherIssuer.Issuer = "someone-else"

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, expired, jwt.SigningMethodHS256), http.StatusUnauthorized},
		{"no subject", "Bearer " + signToken(t, noSubject, jwt.SigningMethodHS256), http.StatusUnauthorized},
		{"wrong issuer", "Bearer " + signToken(t, otherIssuer, jwt.SigningMethodHS256), http.StatusUnauthorized},
		{"wrong algorithm", "Bearer " + signToken(t, valid, jwt.SigningMethodHS512), http.StatusUnauthorized},
		{"valid", "Bearer " + signToken(t, valid, jwt.SigningMethodHS256), http.StatusOK},
	}

	router := newAuthRouter("messflow-auth")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"owner":"owner-1","ctxOwner":"owner-1"}`, w.Body.String())
			}
		})
	}
}

type stubProfiles struct {
	profile *domain.Profile
	err     error
}

func (s stubProfiles) GetProfile(context.Context, string) (*domain.Profile, error) {
	return s.profile, s.err
}

func TestSubscriptionGate(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	expired := domain.SubscriptionExpired
	active := domain.SubscriptionActive
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name       string
		method     string
		profile    domain.Profile
		wantStatus int
	}{
		{"read allowed when expired", http.MethodGet, domain.Profile{SubscriptionStatus: &expired}, http.StatusOK},
		{"write refused when expired", http.MethodPost, domain.Profile{SubscriptionStatus: &expired}, http.StatusPaymentRequired},
		{"write allowed when active", http.MethodPost, domain.Profile{SubscriptionStatus: &active, SubscriptionExpiry: &future}, http.StatusOK},
		{"write allowed on default trial", http.MethodDelete, domain.DefaultProfile("owner-1"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			profile := tt.profile
			r.Use(func(c *gin.Context) {
				c.Request = c.Request.WithContext(middleware.WithOwnerID(c.Request.Context(), "owner-1"))
				c.Next()
			})
			r.Use(middleware.SubscriptionGate(stubProfiles{profile: &profile}, func() time.Time { return now }))
			r.Handle(tt.method, "/thing", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, "/thing", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	assert.NotNil(t, middleware.GetLoggerFromCtx(context.Background()))
}

func TestRateLimit(t *testing.T) {
	lim, err := middleware.NewMemoryLimiter("2-M")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RateLimit(lim))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestAnalyticsEventName(t *testing.T) {
	cases := []struct {
		route, verb, want string
	}{
		{"/api/v1/members", "created", "members_created"},
		{"/api/v1/members/:id/invoices", "created", "members_invoices_created"},
		{"/api/v1/petty-cash/:id", "deleted", "petty_cash_deleted"},
		{"/api/v1/inventory/:id/adjust", "created", "inventory_adjust_created"},
		{"/health", "created", ""},
		{"", "created", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, middleware.AnalyticsEventName(tc.route, tc.verb), tc.route)
	}
}

func TestPosthogMiddleware_DisabledPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.PosthogMiddleware(&utils.PosthogClientWrapper{}))
	r.POST("/api/v1/members", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/members", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}
