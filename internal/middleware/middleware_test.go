package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newRouter(roles ...model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Recovery(), Auth(testSecret))
	handler := func(c *gin.Context) {
		actor, _ := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "role": actor.Role.String()})
	}
	if len(roles) > 0 {
		r.GET("/protected", RequireRole(roles...), handler)
	} else {
		r.GET("/protected", handler)
	}
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	r := newRouter()

	t.Run("missing header", func(t *testing.T) {
		w := doGet(r, "/protected", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"authorization required"}`, w.Body.String())
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := GenerateToken(testSecret, 7, model.RoleProfessional, time.Hour)
		require.NoError(t, err)
		w := doGet(r, "/protected", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":7,"role":"professional"}`, w.Body.String())
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken("other", 7, model.RoleClient, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "/protected", token).Code)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := GenerateToken(testSecret, 7, model.RoleClient, -time.Minute)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "/protected", token).Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		claims := Claims{Role: "superuser", RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "/protected", token).Code)
	})

	t.Run("query token only for websocket upgrade", func(t *testing.T) {
		token, err := GenerateToken(testSecret, 3, model.RoleClient, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "/protected?token="+token, "").Code)

		req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
		req.Header.Set("Upgrade", "websocket")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	r := newRouter(model.RoleAdmin)
	admin, _ := GenerateToken(testSecret, 1, model.RoleAdmin, time.Hour)
	client, _ := GenerateToken(testSecret, 2, model.RoleClient, time.Hour)

	assert.Equal(t, http.StatusOK, doGet(r, "/protected", admin).Code)
	w := doGet(r, "/protected", client)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"forbidden"}`, w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := newRouter()
	token, _ := GenerateToken(testSecret, 1, model.RoleAdmin, time.Hour)
	w := doGet(r, "/panic", token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestRequestIDPropagates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
