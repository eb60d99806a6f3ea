package logic

import (
	"testing"

	"github.com/Aditya282007/Crowd-Chain/internal/errs"
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/Aditya282007/Crowd-Chain/internal/store"
	"github.com/Aditya282007/Crowd-Chain/internal/ws"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserEnv(t *testing.T) (*gorm.DB, *eventRecorder, *UserLogic) {
	t.Helper()
	db := newTestDB(t)
	rec := &eventRecorder{}
	return db, rec, NewUserLogic(db, rec)
}

func TestBanUser(t *testing.T) {
	db, rec, u := newUserEnv(t)
	investor := seedUser(t, db, model.RoleInvestor, "1000.00")
	admin := seedUser(t, db, model.RoleAdmin, "0.00")

	require.NoError(t, u.BanUser(investor.ID, admin.ID))

	banned, err := store.New(db).GetUser(investor.ID)
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)
	assert.True(t, rec.Has(ws.EventUserBanned))

	err = u.BanUser("no-such-user", admin.ID)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestConnectWallet(t *testing.T) {
	db, rec, u := newUserEnv(t)
	investor := seedUser(t, db, model.RoleInvestor, "1000.00")

	connection, err := u.ConnectWallet(investor.ID, "metamask")
	require.NoError(t, err)
	assert.Equal(t, "metamask", connection.WalletType)
	assert.Regexp(t, `^0x[0-9a-fA-F]{40}$`, connection.Address)

	// 用户的钱包地址同步更新为最新连接的地址
	user, err := store.New(db).GetUser(investor.ID)
	require.NoError(t, err)
	assert.Equal(t, connection.Address, user.WalletAddress)

	// 连接记录仅追加
	_, err = u.ConnectWallet(investor.ID, "rainbow")
	require.NoError(t, err)
	wallets, err := store.New(db).GetWalletsByUser(investor.ID)
	require.NoError(t, err)
	assert.Len(t, wallets, 2)

	assert.True(t, rec.Has(ws.EventWalletConnected))
}

func TestDashboardStats(t *testing.T) {
	db, _, u := newUserEnv(t)
	investor := seedUser(t, db, model.RoleInvestor, "1000.00")
	creator := seedUser(t, db, model.RoleCreator, "0.00")
	project := seedProject(t, db, creator.ID, "100000.00", "0.00", true)

	s := store.New(db)
	completed := &model.Transaction{
		InvestorID: investor.ID, ProjectID: project.ID,
		Amount: decimal.RequireFromString("200.00"),
		Status: model.TransactionStatusCompleted,
		Type:   model.TransactionTypeInvestment,
		TxHash: "0xaaa",
	}
	require.NoError(t, s.CreateTransaction(completed))
	// pending 交易不计入统计
	pending := &model.Transaction{
		InvestorID: investor.ID, ProjectID: project.ID,
		Amount: decimal.RequireFromString("999.00"),
		Status: model.TransactionStatusPending,
		Type:   model.TransactionTypeInvestment,
		TxHash: "0xbbb",
	}
	require.NoError(t, s.CreateTransaction(pending))

	dashboard, err := u.Dashboard(investor.ID)
	require.NoError(t, err)

	stats := dashboard["stats"].(map[string]interface{})
	assert.Equal(t, "200.00", stats["total_invested"])
	assert.Equal(t, 1, stats["active_investments"])
	// 组合价值按 15% 模拟增值
	assert.Equal(t, "230.00", stats["portfolio_value"])

	transactions := dashboard["transactions"].([]model.Transaction)
	require.Len(t, transactions, 1)
	assert.Equal(t, completed.ID, transactions[0].ID)

	_, err = u.Dashboard("no-such-user")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestDashboardIncludesCreatorProjects(t *testing.T) {
	db, _, u := newUserEnv(t)
	creator := seedUser(t, db, model.RoleCreator, "0.00")
	seedProject(t, db, creator.ID, "100000.00", "0.00", true)

	dashboard, err := u.Dashboard(creator.ID)
	require.NoError(t, err)

	projects := dashboard["projects"].([]model.Project)
	assert.Len(t, projects, 1)
}

func TestListByRoles(t *testing.T) {
	db, _, u := newUserEnv(t)
	seedUser(t, db, model.RoleInvestor, "1000.00")
	seedUser(t, db, model.RoleInvestor, "1000.00")
	seedUser(t, db, model.RoleCreator, "0.00")
	seedUser(t, db, model.RoleAdmin, "0.00")

	users, err := u.ListByRoles()
	require.NoError(t, err)
	assert.Len(t, users["investors"], 2)
	assert.Len(t, users["creators"], 1)
	// 管理员不出现在分组里
	_, ok := users["admins"]
	assert.False(t, ok)
}
