package logic

import (
	"testing"

	"github.com/Aditya282007/Crowd-Chain/internal/errs"
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/Aditya282007/Crowd-Chain/internal/store"
	"github.com/Aditya282007/Crowd-Chain/internal/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewEnv(t *testing.T) (*gorm.DB, *eventRecorder, *ReviewLogic) {
	t.Helper()
	db := newTestDB(t)
	rec := &eventRecorder{}
	return db, rec, NewReviewLogic(db, rec)
}

func TestApproveCreatorRequestPromotesUser(t *testing.T) {
	db, rec, r := newReviewEnv(t)
	investor := seedUser(t, db, model.RoleInvestor, "1000.00")
	admin := seedUser(t, db, model.RoleAdmin, "0.00")

	request, err := r.SubmitCreatorRequest(investor.ID, CreatorRequestInput{
		BusinessName:        "Acme Studio",
		BusinessDescription: "Indie hardware studio",
	})
	require.NoError(t, err)
	require.Equal(t, model.RequestStatusPending, request.Status)

	reviewed, err := r.ApproveCreatorRequest(request.ID, "looks good", admin.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusApproved, reviewed.Status)
	assert.Equal(t, "looks good", reviewed.AdminNote)
	assert.Equal(t, admin.ID, reviewed.ReviewedBy)
	require.NotNil(t, reviewed.ReviewedAt)

	// 审核通过的副作用：用户提升为已审核的创建者
	user, err := store.New(db).GetUser(investor.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCreator, user.Role)
	assert.True(t, user.IsApproved)

	assert.True(t, rec.Has(ws.EventCreatorRequestApproved))
}

func TestRejectCreatorRequestLeavesUserUntouched(t *testing.T) {
	db, rec, r := newReviewEnv(t)
	investor := seedUser(t, db, model.RoleInvestor, "1000.00")
	admin := seedUser(t, db, model.RoleAdmin, "0.00")

	request, err := r.SubmitCreatorRequest(investor.ID, CreatorRequestInput{
		BusinessName: "Acme Studio",
	})
	require.NoError(t, err)

	reviewed, err := r.RejectCreatorRequest(request.ID, "insufficient track record", admin.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusRejected, reviewed.Status)

	user, err := store.New(db).GetUser(investor.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleInvestor, user.Role)

	assert.True(t, rec.Has(ws.EventCreatorRequestRejected))
}

func TestReReviewOverwritesVerdict(t *testing.T) {
	db, _, r := newReviewEnv(t)
	investor := seedUser(t, db, model.RoleInvestor, "1000.00")
	admin := seedUser(t, db, model.RoleAdmin, "0.00")

	request, err := r.SubmitCreatorRequest(investor.ID, CreatorRequestInput{
		BusinessName: "Acme Studio",
	})
	require.NoError(t, err)

	_, err = r.RejectCreatorRequest(request.ID, "first pass", admin.ID)
	require.NoError(t, err)

	// 再次审核直接覆盖之前的结论
	reviewed, err := r.ApproveCreatorRequest(request.ID, "second pass", admin.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusApproved, reviewed.Status)
	assert.Equal(t, "second pass", reviewed.AdminNote)

	user, err := store.New(db).GetUser(investor.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCreator, user.Role)
}

func TestReviewMissingRequest(t *testing.T) {
	_, _, r := newReviewEnv(t)

	_, err := r.ApproveCreatorRequest("no-such-id", "", "admin")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = r.RejectCreatorRequest("no-such-id", "", "admin")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestApproveProject(t *testing.T) {
	db, rec, r := newReviewEnv(t)
	creator := seedUser(t, db, model.RoleCreator, "0.00")
	admin := seedUser(t, db, model.RoleAdmin, "0.00")
	project := seedProject(t, db, creator.ID, "50000.00", "0.00", false)

	approved, err := r.ApproveProject(project.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	assert.True(t, approved.IsActive)

	assert.True(t, rec.Has(ws.EventProjectApproved))
}

func TestRejectProjectDeactivatesButKeepsRecord(t *testing.T) {
	db, rec, r := newReviewEnv(t)
	creator := seedUser(t, db, model.RoleCreator, "0.00")
	admin := seedUser(t, db, model.RoleAdmin, "0.00")
	project := seedProject(t, db, creator.ID, "50000.00", "0.00", false)

	rejected, err := r.RejectProject(project.ID, admin.ID)
	require.NoError(t, err)
	assert.False(t, rejected.IsActive)

	// 拒绝是下架不是删除，仍可按 ID 查询
	fetched, err := store.New(db).GetProject(project.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.False(t, fetched.IsActive)

	assert.True(t, rec.Has(ws.EventProjectRejected))
}

func TestPendingQueues(t *testing.T) {
	db, _, r := newReviewEnv(t)
	creator := seedUser(t, db, model.RoleCreator, "0.00")
	investor := seedUser(t, db, model.RoleInvestor, "1000.00")

	seedProject(t, db, creator.ID, "50000.00", "0.00", false)
	seedProject(t, db, creator.ID, "80000.00", "0.00", true)

	pending, err := r.PendingProjects()
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = r.SubmitCreatorRequest(investor.ID, CreatorRequestInput{BusinessName: "Acme"})
	require.NoError(t, err)

	requests, err := r.PendingCreatorRequests()
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.NotNil(t, requests[0]["user"])
}
