package logic

import (
	"testing"

	"github.com/Aditya282007/Crowd-Chain/internal/auth"
	"github.com/Aditya282007/Crowd-Chain/internal/config"
	"github.com/Aditya282007/Crowd-Chain/internal/errs"
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/Aditya282007/Crowd-Chain/internal/store"
	"github.com/Aditya282007/Crowd-Chain/internal/ws"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testAuthConfig = config.AuthConfig{
	JWTSecret:       "test-secret",
	SessionTTLHours: 1,
}

func newAuthEnv(t *testing.T) (*gorm.DB, *eventRecorder, *AuthLogic) {
	t.Helper()
	db := newTestDB(t)
	rec := &eventRecorder{}
	return db, rec, NewAuthLogic(db, rec, testAuthConfig)
}

func TestSignupInvestor(t *testing.T) {
	db, rec, a := newAuthEnv(t)

	user, token, err := a.Signup(SignupInput{
		Username:  "alice",
		Email:     "alice@test.local",
		Password:  "secret123",
		Role:      "investor",
		FirstName: "Alice",
		LastName:  "Chen",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEmpty(t, token)

	// 投资人自动通过审核，并获得初始资产与模拟钱包地址
	assert.Equal(t, model.RoleInvestor, user.Role)
	assert.True(t, user.IsApproved)
	assert.True(t, user.Balance.Equal(decimal.RequireFromString("1000.00")))
	assert.Equal(t, 100, user.RewardPoints)
	assert.NotEmpty(t, user.WalletAddress)

	// 令牌对应一条有效会话
	claims, err := auth.ParseToken(token, testAuthConfig.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	session, err := store.New(db).GetSessionByToken(token)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, user.ID, session.UserID)

	assert.True(t, rec.Has(ws.EventUserRegistered))
}

func TestSignupCreatorGetsPendingRequest(t *testing.T) {
	db, rec, a := newAuthEnv(t)

	user, _, err := a.Signup(SignupInput{
		Username:  "bob",
		Email:     "bob@test.local",
		Password:  "secret123",
		Role:      "creator",
		FirstName: "Bob",
		LastName:  "Li",
	})
	require.NoError(t, err)

	// 创建者需要管理员审核，注册时自动生成待审核申请
	assert.Equal(t, model.RoleCreator, user.Role)
	assert.False(t, user.IsApproved)

	requests, err := store.New(db).GetCreatorRequestsByStatus(model.RequestStatusPending)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, user.ID, requests[0].UserID)

	assert.True(t, rec.Has(ws.EventCreatorRequestSubmitted))
}

func TestSignupSanitizesRole(t *testing.T) {
	_, _, a := newAuthEnv(t)

	// 注册请求不能自封管理员
	user, _, err := a.Signup(SignupInput{
		Username: "mallory",
		Email:    "mallory@test.local",
		Password: "secret123",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleInvestor, user.Role)
	assert.True(t, user.IsApproved)
}

func TestSignupRejectsDuplicates(t *testing.T) {
	_, _, a := newAuthEnv(t)

	_, _, err := a.Signup(SignupInput{
		Username: "carol", Email: "carol@test.local", Password: "secret123",
	})
	require.NoError(t, err)

	// 邮箱重复
	_, _, err = a.Signup(SignupInput{
		Username: "carol2", Email: "carol@test.local", Password: "secret123",
	})
	assert.Equal(t, errs.KindValidationFailed, errs.KindOf(err))

	// 用户名重复
	_, _, err = a.Signup(SignupInput{
		Username: "carol", Email: "carol2@test.local", Password: "secret123",
	})
	assert.Equal(t, errs.KindValidationFailed, errs.KindOf(err))
}

func TestLogin(t *testing.T) {
	_, _, a := newAuthEnv(t)

	created, _, err := a.Signup(SignupInput{
		Username: "dave", Email: "dave@test.local", Password: "secret123",
	})
	require.NoError(t, err)

	user, token, err := a.Login("dave@test.local", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)

	_, _, err = a.Login("dave@test.local", "wrongpass")
	assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err))

	_, _, err = a.Login("nobody@test.local", "secret123")
	assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err))
}

func TestLoginRejectsBannedUser(t *testing.T) {
	db, _, a := newAuthEnv(t)

	user, _, err := a.Signup(SignupInput{
		Username: "eve", Email: "eve@test.local", Password: "secret123",
	})
	require.NoError(t, err)
	require.NoError(t, store.New(db).BanUser(user.ID))

	_, _, err = a.Login("eve@test.local", "secret123")
	assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err))
}

func TestLogoutInvalidatesSession(t *testing.T) {
	db, _, a := newAuthEnv(t)

	_, token, err := a.Signup(SignupInput{
		Username: "frank", Email: "frank@test.local", Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, a.Logout(token))

	session, err := store.New(db).GetSessionByToken(token)
	require.NoError(t, err)
	assert.Nil(t, session)
}
