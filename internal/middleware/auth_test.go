package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrnoori/projecthub/internal/auth"
	"github.com/mrnoori/projecthub/internal/constants"
	"github.com/stretchr/testify/require"
)

func newGateRouter(tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(DecodeIdentity(tokens))

	r.GET("/public", func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{
			"authenticated": identity.Authenticated,
			"reason":        string(identity.Reason),
		})
	})
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"username": identity.Username})
	})
	r.GET("/dashboard", RequireAuthPage(), func(c *gin.Context) {
		c.String(http.StatusOK, "dashboard")
	})

	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDecodeIdentity_NeverFailsRequest(t *testing.T) {
	tokens := auth.NewTokenService("gate-secret", time.Hour)
	r := newGateRouter(tokens)

	// missing token
	w := doRequest(r, "/public", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"authenticated":false`)
	require.Contains(t, w.Body.String(), `"reason":"absent"`)

	// garbage token resolves as anonymous, not an error
	w = doRequest(r, "/public", "garbage")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"authenticated":false`)
	require.Contains(t, w.Body.String(), `"reason":"malformed"`)
}

func TestDecodeIdentity_ValidToken(t *testing.T) {
	tokens := auth.NewTokenService("gate-secret", time.Hour)
	r := newGateRouter(tokens)

	token, _, err := tokens.Issue(7, "alice")
	require.NoError(t, err)

	w := doRequest(r, "/public", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	tokens := auth.NewTokenService("gate-secret", time.Hour)
	r := newGateRouter(tokens)

	w := doRequest(r, "/private", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_RejectsExpiredToken(t *testing.T) {
	expiredIssuer := auth.NewTokenService("gate-secret", -time.Minute)
	tokens := auth.NewTokenService("gate-secret", time.Hour)
	r := newGateRouter(tokens)

	// valid signature, expired payload
	token, _, err := expiredIssuer.Issue(7, "alice")
	require.NoError(t, err)

	w := doRequest(r, "/private", token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_RejectsForgedToken(t *testing.T) {
	forger := auth.NewTokenService("other-secret", time.Hour)
	tokens := auth.NewTokenService("gate-secret", time.Hour)
	r := newGateRouter(tokens)

	token, _, err := forger.Issue(7, "alice")
	require.NoError(t, err)

	w := doRequest(r, "/private", token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_AllowsAuthenticated(t *testing.T) {
	tokens := auth.NewTokenService("gate-secret", time.Hour)
	r := newGateRouter(tokens)

	token, _, err := tokens.Issue(7, "alice")
	require.NoError(t, err)

	w := doRequest(r, "/private", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "alice")
}

func TestRequireAuthPage_RedirectsAnonymous(t *testing.T) {
	tokens := auth.NewTokenService("gate-secret", time.Hour)
	r := newGateRouter(tokens)

	w := doRequest(r, "/dashboard", "")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
}
