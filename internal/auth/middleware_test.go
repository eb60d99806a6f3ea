package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Aditya282007/Crowd-Chain/internal/database"
	"github.com/Aditya282007/Crowd-Chain/internal/errs"
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/Aditya282007/Crowd-Chain/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newVerifierEnv(t *testing.T) (*store.Store, *Verifier) {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	s := store.New(db)
	return s, NewVerifier(s, testSecret)
}

func seedSessionUser(t *testing.T, s *store.Store, banned bool) (*model.User, string) {
	t.Helper()
	user := &model.User{
		Username:   "gina",
		Email:      "gina@test.local",
		Password:   "$2a$10$notarealhash",
		Role:       model.RoleInvestor,
		IsApproved: true,
		IsBanned:   banned,
		Balance:    decimal.RequireFromString("1000.00"),
	}
	require.NoError(t, s.CreateUser(user))

	token, err := GenerateToken(user.ID, testSecret, time.Hour)
	require.NoError(t, err)
	_, err = s.CreateSession(user.ID, token, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return user, token
}

func TestResolveValidToken(t *testing.T) {
	s, v := newVerifierEnv(t)
	user, token := seedSessionUser(t, s, false)

	identity, err := v.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)
	assert.Equal(t, model.RoleInvestor, identity.Role)
	assert.Equal(t, user.Username, identity.Username)
}

func TestResolveRejectsMissingOrGarbageToken(t *testing.T) {
	_, v := newVerifierEnv(t)

	_, err := v.Resolve("")
	assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err))

	_, err = v.Resolve("not-a-jwt")
	assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err))
}

func TestResolveRejectsTokenWithoutSession(t *testing.T) {
	s, v := newVerifierEnv(t)
	_, token := seedSessionUser(t, s, false)

	// 登出后会话删除，签名仍有效的令牌随之作废
	require.NoError(t, s.DeleteSession(token))
	_, err := v.Resolve(token)
	assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err))
}

func TestResolveRejectsExpiredSession(t *testing.T) {
	s, v := newVerifierEnv(t)
	user := &model.User{
		Username: "henry", Email: "henry@test.local", Password: "x",
		Role: model.RoleInvestor, IsApproved: true,
		Balance: decimal.RequireFromString("0.00"),
	}
	require.NoError(t, s.CreateUser(user))

	token, err := GenerateToken(user.ID, testSecret, time.Hour)
	require.NoError(t, err)
	_, err = s.CreateSession(user.ID, token, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = v.Resolve(token)
	assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err))
}

func TestResolveRejectsBannedUser(t *testing.T) {
	s, v := newVerifierEnv(t)
	_, token := seedSessionUser(t, s, false)

	var user model.User
	require.NoError(t, s.DB().First(&user, "username = ?", "gina").Error)
	require.NoError(t, s.BanUser(user.ID))

	// 封禁立即作废所有已签发令牌
	_, err := v.Resolve(token)
	assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err))
}

func TestAuthenticateMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s, v := newVerifierEnv(t)
	user, token := seedSessionUser(t, s, false)

	r := gin.New()
	r.GET("/protected", v.Authenticate(), func(c *gin.Context) {
		identity := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": identity.ID, "token": TokenFrom(c)})
	})

	// 无令牌
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 有效令牌
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s, v := newVerifierEnv(t)
	_, token := seedSessionUser(t, s, false)

	r := gin.New()
	r.GET("/admin", v.Authenticate(), RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/invest", v.Authenticate(), RequireRole(model.RoleInvestor, model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// 投资人访问管理员路由
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 角色命中任意一个即放行
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/invest", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
