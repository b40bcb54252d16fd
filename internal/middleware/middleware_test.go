package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/currency_rates_api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

const testSecret = "test-secret"

func generateTestToken(subject, secret string, expiresAt time.Time) string {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(secret))
	return signed
}

type MiddlewareTestSuite struct {
	suite.Suite
	logs   *bytes.Buffer
	router *gin.Engine
}

func (suite *MiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.logs = &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(suite.logs, nil))

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(logger))
	suite.router.GET("/whoami", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("inside handler")
		c.JSON(http.StatusOK, gin.H{"user": userID, "found": ok})
	})
	suite.router.GET("/open", func(c *gin.Context) {
		_, ok := middleware.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"found": ok})
	})
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}

func (suite *MiddlewareTestSuite) do(path, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *MiddlewareTestSuite) TestAuth_ValidToken() {
	token := generateTestToken("sync-operator", testSecret, time.Now().Add(time.Hour))

	w := suite.do("/whoami", "Bearer "+token)

	suite.Equal(http.StatusOK, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("sync-operator", body["user"])
	suite.Equal(true, body["found"])
	suite.NotEmpty(w.Header().Get("X-Request-ID"))
	suite.Contains(suite.logs.String(), `"user_id":"sync-operator"`)
}

func (suite *MiddlewareTestSuite) TestAuth_MissingHeader() {
	w := suite.do("/whoami", "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Authorization header required")
}

func (suite *MiddlewareTestSuite) TestAuth_WrongScheme() {
	w := suite.do("/whoami", "Basic abc")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Bearer {token}")
}

func (suite *MiddlewareTestSuite) TestAuth_ExpiredToken() {
	token := generateTestToken("sync-operator", testSecret, time.Now().Add(-time.Hour))

	w := suite.do("/whoami", "Bearer "+token)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Token has expired")
}

func (suite *MiddlewareTestSuite) TestAuth_WrongSecret() {
	token := generateTestToken("sync-operator", "other-secret", time.Now().Add(time.Hour))

	w := suite.do("/whoami", "Bearer "+token)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *MiddlewareTestSuite) TestLogging_KeepsIncomingRequestID() {
	req, _ := http.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal("req-123", w.Header().Get("X-Request-ID"))
	suite.Contains(suite.logs.String(), `"request_id":"req-123"`)
	suite.Contains(suite.logs.String(), "Request completed")
	suite.Contains(w.Body.String(), `"found":false`)
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if middleware.GetLoggerFromCtx(req.Context()) != slog.Default() {
		t.Fatal("expected default logger")
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim, err := middleware.NewRateLimiter("2-M")
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	r := gin.New()
	r.Use(middleware.RateLimit(lim))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("request %d: got %d, want %d", i, codes[i], want[i])
		}
	}
}

func TestNewRateLimiter_InvalidFormat(t *testing.T) {
	if _, err := middleware.NewRateLimiter("lots"); err == nil {
		t.Fatal("expected error for malformed rate")
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CORS([]string{"https://rates.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://rates.example.com")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://rates.example.com" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}
