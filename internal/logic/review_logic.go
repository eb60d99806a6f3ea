package logic

import (
	"github.com/Aditya282007/Crowd-Chain/internal/errs"
	"github.com/Aditya282007/Crowd-Chain/internal/logger"
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/Aditya282007/Crowd-Chain/internal/store"
	"github.com/Aditya282007/Crowd-Chain/internal/ws"
	"gorm.io/gorm"
)

// ReviewLogic 审核工作流
//
// 创建者申请和项目走两条结构相同的审核管道。
// 重复审核会覆盖之前的结论（沿用现有行为，见 DESIGN.md）。
type ReviewLogic struct {
	store *store.Store
	hub   Broadcaster
}

// NewReviewLogic 创建审核工作流
func NewReviewLogic(db *gorm.DB, hub Broadcaster) *ReviewLogic {
	return &ReviewLogic{store: store.New(db), hub: hub}
}

// CreatorRequestInput 投资人主动申请成为创建者的输入
type CreatorRequestInput struct {
	BusinessName        string `json:"business_name"`
	BusinessDescription string `json:"business_description"`
	Website             string `json:"website"`
	Experience          string `json:"experience"`
}

// SubmitCreatorRequest 投资人提交创建者资格申请
func (r *ReviewLogic) SubmitCreatorRequest(userID string, input CreatorRequestInput) (*model.CreatorRequest, error) {
	request := &model.CreatorRequest{
		UserID:              userID,
		BusinessName:        input.BusinessName,
		BusinessDescription: input.BusinessDescription,
		Website:             input.Website,
		Experience:          input.Experience,
		Status:              model.RequestStatusPending,
	}
	if err := r.store.CreateCreatorRequest(request); err != nil {
		return nil, err
	}

	r.hub.Publish(ws.EventCreatorRequestSubmitted, map[string]interface{}{
		"request_id": request.ID,
		"user_id":    userID,
	})
	return request, nil
}

// ApproveCreatorRequest 通过创建者申请，并将关联用户提升为创建者
func (r *ReviewLogic) ApproveCreatorRequest(id, note, reviewerID string) (*model.CreatorRequest, error) {
	request, err := r.store.ReviewCreatorRequest(id, model.RequestStatusApproved, note, reviewerID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errs.NotFound("申请不存在")
	}

	// 审核通过的副作用：用户角色提升为 creator 并标记已审核
	if _, err := r.store.UpdateUser(request.UserID, map[string]interface{}{
		"role":        model.RoleCreator,
		"is_approved": true,
	}); err != nil {
		return nil, err
	}

	logger.Info("Creator request %s approved by %s", id, reviewerID)
	r.hub.Publish(ws.EventCreatorRequestApproved, map[string]interface{}{
		"request_id": id,
		"user_id":    request.UserID,
	})
	return request, nil
}

// RejectCreatorRequest 拒绝创建者申请，不改动关联用户
func (r *ReviewLogic) RejectCreatorRequest(id, note, reviewerID string) (*model.CreatorRequest, error) {
	request, err := r.store.ReviewCreatorRequest(id, model.RequestStatusRejected, note, reviewerID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errs.NotFound("申请不存在")
	}

	logger.Info("Creator request %s rejected by %s", id, reviewerID)
	r.hub.Publish(ws.EventCreatorRequestRejected, map[string]interface{}{
		"request_id": id,
		"user_id":    request.UserID,
	})
	return request, nil
}

// ApproveProject 通过项目审核
func (r *ReviewLogic) ApproveProject(id, reviewerID string) (*model.Project, error) {
	project, err := r.store.UpdateProject(id, map[string]interface{}{"is_approved": true})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errs.NotFound("项目不存在")
	}

	r.hub.Publish(ws.EventProjectApproved, map[string]interface{}{
		"project_id":  id,
		"approved_by": reviewerID,
	})
	return project, nil
}

// RejectProject 拒绝项目：下架而非删除，仍可按 ID 查询
func (r *ReviewLogic) RejectProject(id, reviewerID string) (*model.Project, error) {
	project, err := r.store.UpdateProject(id, map[string]interface{}{"is_active": false})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errs.NotFound("项目不存在")
	}

	r.hub.Publish(ws.EventProjectRejected, map[string]interface{}{
		"project_id":  id,
		"rejected_by": reviewerID,
	})
	return project, nil
}

// PendingProjects 待审核的项目列表
func (r *ReviewLogic) PendingProjects() ([]model.Project, error) {
	return r.store.GetPendingProjects()
}

// PendingCreatorRequests 待审核的创建者申请（附带申请用户信息）
func (r *ReviewLogic) PendingCreatorRequests() ([]map[string]interface{}, error) {
	requests, err := r.store.GetCreatorRequestsByStatus(model.RequestStatusPending)
	if err != nil {
		return nil, err
	}

	result := make([]map[string]interface{}, 0, len(requests))
	for _, request := range requests {
		item := map[string]interface{}{"request": request}
		user, err := r.store.GetUser(request.UserID)
		if err == nil && user != nil {
			item["user"] = user.Public()
		}
		result = append(result, item)
	}
	return result, nil
}
