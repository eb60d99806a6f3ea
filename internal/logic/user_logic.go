package logic

import (
	"github.com/Aditya282007/Crowd-Chain/internal/chain"
	"github.com/Aditya282007/Crowd-Chain/internal/errs"
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/Aditya282007/Crowd-Chain/internal/store"
	"github.com/Aditya282007/Crowd-Chain/internal/ws"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserLogic 用户管理业务逻辑
type UserLogic struct {
	store *store.Store
	hub   Broadcaster
}

// NewUserLogic 创建用户管理业务逻辑
func NewUserLogic(db *gorm.DB, hub Broadcaster) *UserLogic {
	return &UserLogic{store: store.New(db), hub: hub}
}

// BanUser 封禁用户，此后该用户的所有令牌立即失效
func (u *UserLogic) BanUser(userID, bannedBy string) error {
	user, err := u.store.GetUser(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errs.NotFound("用户不存在")
	}

	if err := u.store.BanUser(userID); err != nil {
		return err
	}

	u.hub.Publish(ws.EventUserBanned, map[string]interface{}{
		"user_id":   userID,
		"banned_by": bannedBy,
	})
	return nil
}

// ConnectWallet 模拟连接钱包，生成地址并更新用户钱包地址
func (u *UserLogic) ConnectWallet(userID, walletType string) (*model.WalletConnection, error) {
	address := chain.NewAddress()
	connection, err := u.store.CreateWalletConnection(userID, walletType, address)
	if err != nil {
		return nil, err
	}

	if _, err := u.store.UpdateUser(userID, map[string]interface{}{
		"wallet_address": address,
	}); err != nil {
		return nil, err
	}

	u.hub.Publish(ws.EventWalletConnected, map[string]interface{}{
		"user_id":     userID,
		"wallet_type": walletType,
		"address":     address,
	})
	return connection, nil
}

// ListByRoles 管理端用户列表（投资人与创建者分组）
func (u *UserLogic) ListByRoles() (map[string][]model.User, error) {
	investors, err := u.store.GetUsersByRole(model.RoleInvestor)
	if err != nil {
		return nil, err
	}
	creators, err := u.store.GetUsersByRole(model.RoleCreator)
	if err != nil {
		return nil, err
	}
	return map[string][]model.User{
		"investors": investors,
		"creators":  creators,
	}, nil
}

// Dashboard 用户工作台数据
func (u *UserLogic) Dashboard(userID string) (map[string]interface{}, error) {
	user, err := u.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NotFound("用户不存在")
	}

	transactions, err := u.store.GetTransactionsByUser(userID)
	if err != nil {
		return nil, err
	}

	completed := make([]model.Transaction, 0, len(transactions))
	totalInvested := decimal.Zero
	for _, tx := range transactions {
		if tx.Status == model.TransactionStatusCompleted {
			completed = append(completed, tx)
			totalInvested = totalInvested.Add(tx.Amount)
		}
	}

	var projects []model.Project
	if user.Role == model.RoleCreator {
		projects, err = u.store.GetProjectsByCreator(userID)
		if err != nil {
			return nil, err
		}
	}

	// 模拟 15% 的组合增值
	portfolioValue := totalInvested.Mul(decimal.RequireFromString("1.15"))

	return map[string]interface{}{
		"user":         user.Public(),
		"transactions": completed,
		"projects":     projects,
		"stats": map[string]interface{}{
			"total_invested":     totalInvested.StringFixed(2),
			"active_investments": len(completed),
			"portfolio_value":    portfolioValue.StringFixed(2),
		},
	}, nil
}
