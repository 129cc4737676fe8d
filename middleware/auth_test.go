package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"govconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var testSecret = []byte("test-secret")

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()

	r := gin.New()
	r.Use(ActorMiddleware(testSecret))
	r.GET("/public", func(c *gin.Context) {
		c.String(http.StatusOK, ActorFrom(c).Role())
	})
	r.GET("/official", RequireOfficial(), func(c *gin.Context) {
		c.String(http.StatusOK, ActorFrom(c).AuthorityID)
	})
	r.GET("/citizen", RequireCitizen(), func(c *gin.Context) {
		c.String(http.StatusOK, ActorFrom(c).UserID)
	})
	return r
}

func do(r *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, sub, role, authorityID string) string {
	t.Helper()
	tok, err := utils.GenerateToken(testSecret, sub, role, authorityID, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return "Bearer " + tok
}

func TestActorMiddleware(t *testing.T) {
	r := newRouter()

	if w := do(r, "/public", ""); w.Code != http.StatusOK || w.Body.String() != "" {
		t.Errorf("anonymous: %d %q", w.Code, w.Body.String())
	}
	if w := do(r, "/public", "Bearer not.a.token"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: %d", w.Code)
	}
	if w := do(r, "/public", "Basic abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong scheme: %d", w.Code)
	}
	if w := do(r, "/public", token(t, "user-1", utils.RoleCitizen, "")); w.Body.String() != "user" {
		t.Errorf("citizen resolved as %q", w.Body.String())
	}
}

func TestRoleGuards(t *testing.T) {
	r := newRouter()
	citizen := token(t, "user-1", utils.RoleCitizen, "")
	official := token(t, "officer-1", utils.RoleOfficial, "auth-1")

	tests := []struct {
		path, auth string
		code       int
	}{
		{"/official", "", http.StatusUnauthorized},
		{"/official", citizen, http.StatusForbidden},
		{"/official", official, http.StatusOK},
		{"/citizen", official, http.StatusForbidden},
		{"/citizen", citizen, http.StatusOK},
	}
	for _, tt := range tests {
		if w := do(r, tt.path, tt.auth); w.Code != tt.code {
			t.Errorf("GET %s: %d, want %d", tt.path, w.Code, tt.code)
		}
	}
	if w := do(r, "/official", official); w.Body.String() != "auth-1" {
		t.Errorf("official authority = %q", w.Body.String())
	}
}
