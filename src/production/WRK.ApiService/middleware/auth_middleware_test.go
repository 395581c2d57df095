package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	jwt "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/implementation/jwt"
	logger "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Logger"
	api_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/api"
)

func newProtectedRouter(jwtService *jwt.Service, reached *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	auth := NewAuthMiddleware(jwtService, logger.Nop())
	router.GET("/protected", auth.Authenticate(), func(c *gin.Context) {
		*reached = true
		adminID, err := GetAdminIDFromGinContext(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"admin": adminID})
	})
	return router
}

func decodeMsg(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body api_models.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Msg
}

func TestAuthenticate(t *testing.T) {
	jwtService := jwt.NewService(api_models.Config{SecretKey: "test-secret"})

	t.Run("ValidToken", func(t *testing.T) {
		reached := false
		router := newProtectedRouter(jwtService, &reached)
		token, _, err := jwtService.GenerateToken("admin-1")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, reached)
		assert.JSONEq(t, `{"admin":"admin-1"}`, w.Body.String())
	})

	noToken := map[string]string{
		"MissingHeader": "",
		"WrongScheme":   "Basic YWRtaW46cHc=",
		"EmptyBearer":   "Bearer ",
		"SchemeOnly":    "Bearer",
	}
	for name, header := range noToken {
		t.Run(name, func(t *testing.T) {
			reached := false
			router := newProtectedRouter(jwtService, &reached)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, MsgNoToken, decodeMsg(t, w))
			assert.False(t, reached)
		})
	}

	t.Run("ExpiredToken", func(t *testing.T) {
		reached := false
		router := newProtectedRouter(jwtService, &reached)
		sixHoursAgo := time.Now().Add(-6 * time.Hour)
		token, _, err := jwtService.WithClock(func() time.Time { return sixHoursAgo }).GenerateToken("admin-1")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, MsgInvalidToken, decodeMsg(t, w))
		assert.False(t, reached)
	})

	t.Run("ForgedToken", func(t *testing.T) {
		reached := false
		router := newProtectedRouter(jwtService, &reached)
		forged, _, err := jwt.NewService(api_models.Config{SecretKey: "attacker"}).GenerateToken("admin-1")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, MsgInvalidToken, decodeMsg(t, w))
		assert.False(t, reached)
	})
}

func TestExtractBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer abc.def")
	assert.Equal(t, "abc.def", extractBearerToken(req))
}
