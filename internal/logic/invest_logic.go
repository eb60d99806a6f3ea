package logic

import (
	"regexp"
	"sync"
	"time"

	"github.com/Aditya282007/Crowd-Chain/internal/chain"
	"github.com/Aditya282007/Crowd-Chain/internal/errs"
	"github.com/Aditya282007/Crowd-Chain/internal/logger"
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/Aditya282007/Crowd-Chain/internal/store"
	"github.com/Aditya282007/Crowd-Chain/internal/ws"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Broadcaster 事件广播接口
type Broadcaster interface {
	Publish(eventType string, data interface{})
}

// amountPattern 金额格式：非负整数，最多两位小数
var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// InvestLogic 投资交易引擎
//
// 投资分两阶段：校验通过后立即创建 pending 交易并返回回执，
// 经过模拟确认延迟后异步结算。结算按项目加锁串行执行，
// 并基于最新状态二次校验，保证项目已筹金额不会超过目标金额。
type InvestLogic struct {
	db    *gorm.DB
	store *store.Store
	hub   Broadcaster
	delay time.Duration
	pool  *ants.Pool

	timersMu sync.Mutex
	timers   map[string]*time.Timer

	locksMu      sync.Mutex
	projectLocks map[string]*sync.Mutex
}

// NewInvestLogic 创建投资交易引擎
func NewInvestLogic(db *gorm.DB, hub Broadcaster, delay time.Duration, poolSize int) (*InvestLogic, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	return &InvestLogic{
		db:           db,
		store:        store.New(db),
		hub:          hub,
		delay:        delay,
		pool:         pool,
		timers:       make(map[string]*time.Timer),
		projectLocks: make(map[string]*sync.Mutex),
	}, nil
}

// Invest 发起投资
//
// 前置校验按顺序执行，任一失败立即同步返回，不产生交易记录：
//  1. 项目存在且已通过审核
//  2. 金额为格式正确的正数
//  3. 金额不超过剩余目标金额
//  4. 投资人余额充足
//
// 校验通过后创建 pending 交易（带模拟链上回执）立即返回，
// 并调度延迟结算。
func (l *InvestLogic) Invest(investorID, projectID, amountStr string) (*model.Transaction, error) {
	project, err := l.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil || !project.IsApproved {
		return nil, errs.NotFound("项目不存在或未通过审核")
	}

	if !amountPattern.MatchString(amountStr) {
		return nil, errs.New(errs.KindInvalidAmount, "无效的投资金额格式")
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil || !amount.IsPositive() {
		return nil, errs.New(errs.KindInvalidAmount, "投资金额必须大于0")
	}

	remaining := project.Remaining()
	if remaining.LessThanOrEqual(decimal.Zero) {
		return nil, errs.New(errs.KindGoalReached, "项目已达成筹款目标")
	}
	if amount.GreaterThan(remaining) {
		return nil, errs.ExceedsRemaining(remaining)
	}

	investor, err := l.store.GetUser(investorID)
	if err != nil {
		return nil, err
	}
	if investor == nil {
		return nil, errs.NotFound("用户不存在")
	}
	if investor.Balance.LessThan(amount) {
		return nil, errs.New(errs.KindInsufficientBalance, "账户余额不足")
	}

	// 创建待确认交易并附上模拟链上回执
	receipt := chain.NewReceipt()
	tx := &model.Transaction{
		InvestorID:  investorID,
		ProjectID:   projectID,
		Amount:      amount,
		Status:      model.TransactionStatusPending,
		Type:        model.TransactionTypeInvestment,
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber,
		GasUsed:     receipt.GasUsed,
	}
	if err := l.store.CreateTransaction(tx); err != nil {
		return nil, err
	}

	l.hub.Publish(ws.EventInvestmentPending, map[string]interface{}{
		"transaction_id": tx.ID,
		"project_id":     projectID,
		"investor_id":    investorID,
		"amount":         amount,
	})

	l.scheduleSettlement(tx.ID, projectID)

	return tx, nil
}

// scheduleSettlement 在模拟确认延迟后调度结算
func (l *InvestLogic) scheduleSettlement(txID, projectID string) {
	l.timersMu.Lock()
	defer l.timersMu.Unlock()
	l.timers[txID] = time.AfterFunc(l.delay, func() {
		l.timersMu.Lock()
		delete(l.timers, txID)
		l.timersMu.Unlock()

		if err := l.pool.Submit(func() { l.settle(txID, projectID) }); err != nil {
			// 协程池不可用时内联结算，已受理的交易必须落账
			l.settle(txID, projectID)
		}
	})
}

// settle 结算交易
//
// 持有项目级锁后基于最新状态重新校验，两笔并发投资不会
// 同时通过剩余目标检查。校验失败的交易转为 failed，余额不动。
func (l *InvestLogic) settle(txID, projectID string) {
	lock := l.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := l.store.GetTransaction(txID)
	if err != nil {
		logger.Error("Failed to fetch transaction %s for settlement: %v", txID, err)
		return
	}
	// pending 状态只消费一次
	if tx == nil || tx.Status != model.TransactionStatusPending {
		return
	}

	project, err := l.store.GetProject(tx.ProjectID)
	if err != nil || project == nil {
		l.failSettlement(txID, "project missing")
		return
	}
	investor, err := l.store.GetUser(tx.InvestorID)
	if err != nil || investor == nil {
		l.failSettlement(txID, "investor missing")
		return
	}

	// 结算时的世界可能已和校验时不同，重新检查
	if tx.Amount.GreaterThan(project.Remaining()) {
		l.failSettlement(txID, "remaining goal exceeded at settlement")
		return
	}
	if investor.Balance.LessThan(tx.Amount) {
		l.failSettlement(txID, "insufficient balance at settlement")
		return
	}

	newBalance := investor.Balance.Sub(tx.Amount)
	newCurrent := project.CurrentAmount.Add(tx.Amount)
	now := time.Now()

	err = l.db.Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Model(&model.Transaction{}).Where("id = ?", tx.ID).
			Update("status", model.TransactionStatusCompleted).Error; err != nil {
			return err
		}
		if err := dbtx.Model(&model.User{}).Where("id = ?", investor.ID).
			Updates(map[string]interface{}{"balance": newBalance, "updated_at": now}).Error; err != nil {
			return err
		}
		if err := dbtx.Model(&model.Project{}).Where("id = ?", project.ID).
			Updates(map[string]interface{}{"current_amount": newCurrent, "updated_at": now}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		logger.Error("Settlement transaction failed for %s: %v", txID, err)
		l.failSettlement(txID, err.Error())
		return
	}

	logger.Info("Settled investment %s: project %s current %s", txID, project.ID, newCurrent.StringFixed(2))

	l.hub.Publish(ws.EventInvestmentCompleted, map[string]interface{}{
		"transaction_id": tx.ID,
		"project_id":     tx.ProjectID,
		"investor_id":    tx.InvestorID,
		"amount":         tx.Amount,
	})
}

// failSettlement 结算失败，交易转为 failed，余额与项目金额不做任何变更
func (l *InvestLogic) failSettlement(txID, reason string) {
	logger.Warn("Settlement failed for transaction %s: %s", txID, reason)
	if err := l.store.UpdateTransactionStatus(txID, model.TransactionStatusFailed); err != nil {
		logger.Error("Failed to mark transaction %s as failed: %v", txID, err)
	}
}

// projectLock 获取项目级结算锁
func (l *InvestLogic) projectLock(projectID string) *sync.Mutex {
	l.locksMu.Lock()
	defer l.locksMu.Unlock()
	lock, ok := l.projectLocks[projectID]
	if !ok {
		lock = &sync.Mutex{}
		l.projectLocks[projectID] = lock
	}
	return lock
}

// PendingCount 仍在等待结算的交易数（用于优雅关闭与测试）
func (l *InvestLogic) PendingCount() int {
	l.timersMu.Lock()
	defer l.timersMu.Unlock()
	return len(l.timers)
}

// Stop 取消尚未触发的结算并释放协程池
func (l *InvestLogic) Stop() {
	l.timersMu.Lock()
	for id, timer := range l.timers {
		timer.Stop()
		delete(l.timers, id)
	}
	l.timersMu.Unlock()
	l.pool.Release()
}
