package logic

import (
	"time"

	"github.com/Aditya282007/Crowd-Chain/internal/auth"
	"github.com/Aditya282007/Crowd-Chain/internal/chain"
	"github.com/Aditya282007/Crowd-Chain/internal/config"
	"github.com/Aditya282007/Crowd-Chain/internal/errs"
	"github.com/Aditya282007/Crowd-Chain/internal/logger"
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/Aditya282007/Crowd-Chain/internal/store"
	"github.com/Aditya282007/Crowd-Chain/internal/ws"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 新用户初始资产
var (
	startingBalance      = decimal.RequireFromString("1000.00")
	startingRewardPoints = 100
)

// AuthLogic 注册登录业务逻辑
type AuthLogic struct {
	store *store.Store
	hub   Broadcaster
	cfg   config.AuthConfig
}

// NewAuthLogic 创建注册登录业务逻辑
func NewAuthLogic(db *gorm.DB, hub Broadcaster, cfg config.AuthConfig) *AuthLogic {
	return &AuthLogic{store: store.New(db), hub: hub, cfg: cfg}
}

// SignupInput 注册输入
type SignupInput struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Signup 注册新用户
//
// 角色只允许 investor / creator，其他取值一律降级为 investor。
// 投资人自动通过审核；创建者自动生成一条待审核申请。
func (a *AuthLogic) Signup(input SignupInput) (*model.User, string, error) {
	existing, err := a.store.GetUserByEmail(input.Email)
	if err != nil {
		return nil, "", err
	}
	if existing == nil {
		existing, err = a.store.GetUserByUsername(input.Username)
		if err != nil {
			return nil, "", err
		}
	}
	if existing != nil {
		return nil, "", errs.New(errs.KindValidationFailed, "用户已存在")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	// 防止注册时伪造管理员角色
	role := model.Role(input.Role)
	if role != model.RoleInvestor && role != model.RoleCreator {
		role = model.RoleInvestor
	}

	user := &model.User{
		Username:      input.Username,
		Email:         input.Email,
		Password:      string(hash),
		Role:          role,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		WalletAddress: chain.NewAddress(),
		Balance:       startingBalance,
		RewardPoints:  startingRewardPoints,
		IsApproved:    role == model.RoleInvestor,
	}
	if err := a.store.CreateUser(user); err != nil {
		return nil, "", err
	}

	// 创建者注册时自动提交资格申请
	if role == model.RoleCreator {
		request := &model.CreatorRequest{
			UserID:              user.ID,
			BusinessName:        input.FirstName + " " + input.LastName + " Business",
			BusinessDescription: "New creator account - pending review",
			Experience:          "To be filled by creator",
			Status:              model.RequestStatusPending,
		}
		if err := a.store.CreateCreatorRequest(request); err != nil {
			logger.Error("Failed to create creator request for user %s: %v", user.ID, err)
		} else {
			a.hub.Publish(ws.EventCreatorRequestSubmitted, map[string]interface{}{
				"request_id": request.ID,
				"user_id":    user.ID,
			})
		}
	}

	token, err := a.openSession(user.ID)
	if err != nil {
		return nil, "", err
	}

	a.hub.Publish(ws.EventUserRegistered, map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, token, nil
}

// Login 登录
func (a *AuthLogic) Login(email, password string) (*model.User, string, error) {
	user, err := a.store.GetUserByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || user.IsBanned {
		return nil, "", errs.Unauthenticated("账号或密码错误，或账号已被封禁")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", errs.Unauthenticated("账号或密码错误")
	}

	token, err := a.openSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout 登出，删除会话
func (a *AuthLogic) Logout(token string) error {
	return a.store.DeleteSession(token)
}

// openSession 签发 JWT 并建立会话
func (a *AuthLogic) openSession(userID string) (string, error) {
	token, err := auth.GenerateToken(userID, a.cfg.JWTSecret, a.cfg.SessionTTL())
	if err != nil {
		return "", err
	}
	if _, err := a.store.CreateSession(userID, token, time.Now().Add(a.cfg.SessionTTL())); err != nil {
		return "", err
	}
	return token, nil
}
