package logic

import (
	"math"
	"time"

	"github.com/Aditya282007/Crowd-Chain/internal/errs"
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/Aditya282007/Crowd-Chain/internal/store"
	"github.com/Aditya282007/Crowd-Chain/internal/ws"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	store *store.Store
	hub   Broadcaster
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB, hub Broadcaster) *ProjectLogic {
	return &ProjectLogic{store: store.New(db), hub: hub}
}

// ProjectInput 创建项目的输入
type ProjectInput struct {
	Title           string              `json:"title" binding:"required"`
	Description     string              `json:"description" binding:"required"`
	FullDescription string              `json:"full_description"`
	Category        string              `json:"category" binding:"required"`
	GoalAmount      string              `json:"goal_amount" binding:"required"`
	ImageURL        string              `json:"image_url"`
	EndDate         time.Time           `json:"end_date" binding:"required"`
	Milestones      model.MilestoneList `json:"milestones"`
}

// CreateProject 创建项目（pending 状态，等待管理员审核）
func (p *ProjectLogic) CreateProject(creatorID string, input ProjectInput) (*model.Project, error) {
	creator, err := p.store.GetUser(creatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil || !creator.IsApproved {
		return nil, errs.Forbidden("创建者尚未通过审核")
	}

	if !amountPattern.MatchString(input.GoalAmount) {
		return nil, errs.New(errs.KindValidationFailed, "无效的目标金额格式")
	}
	goal, err := decimal.NewFromString(input.GoalAmount)
	if err != nil || !goal.IsPositive() {
		return nil, errs.New(errs.KindValidationFailed, "目标金额必须大于0")
	}
	if !input.EndDate.After(time.Now()) {
		return nil, errs.New(errs.KindValidationFailed, "结束时间必须晚于当前时间")
	}

	project := &model.Project{
		CreatorID:       creatorID,
		Title:           input.Title,
		Description:     input.Description,
		FullDescription: input.FullDescription,
		Category:        input.Category,
		ImageURL:        input.ImageURL,
		GoalAmount:      goal,
		CurrentAmount:   decimal.Zero,
		IsApproved:      false,
		IsActive:        true,
		EndDate:         input.EndDate,
		Milestones:      input.Milestones,
	}
	if err := p.store.CreateProject(project); err != nil {
		return nil, err
	}

	p.hub.Publish(ws.EventProjectCreated, map[string]interface{}{
		"project_id": project.ID,
		"creator_id": creatorID,
	})
	return project, nil
}

// ListPublic 公开项目列表（已审核且未下架），附带创建者摘要和进度
func (p *ProjectLogic) ListPublic() ([]map[string]interface{}, error) {
	projects, err := p.store.GetApprovedProjects()
	if err != nil {
		return nil, err
	}

	result := make([]map[string]interface{}, 0, len(projects))
	for _, project := range projects {
		result = append(result, map[string]interface{}{
			"project":  project,
			"creator":  p.creatorSummary(project.CreatorID),
			"progress": progressPercent(&project),
		})
	}
	return result, nil
}

// GetDetail 项目详情，附带创建者、进度、支持人数与剩余天数
func (p *ProjectLogic) GetDetail(id string) (map[string]interface{}, error) {
	project, err := p.store.GetProject(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errs.NotFound("项目不存在")
	}

	backers, err := p.store.CountCompletedByProject(id)
	if err != nil {
		return nil, err
	}

	daysLeft := int(math.Ceil(time.Until(project.EndDate).Hours() / 24))
	if daysLeft < 0 {
		daysLeft = 0
	}

	return map[string]interface{}{
		"project":   project,
		"creator":   p.creatorSummary(project.CreatorID),
		"progress":  progressPercent(project),
		"backers":   backers,
		"days_left": daysLeft,
	}, nil
}

// creatorSummary 创建者公开摘要
func (p *ProjectLogic) creatorSummary(creatorID string) map[string]interface{} {
	creator, err := p.store.GetUser(creatorID)
	if err != nil || creator == nil {
		return nil
	}
	return map[string]interface{}{
		"username":   creator.Username,
		"first_name": creator.FirstName,
		"last_name":  creator.LastName,
	}
}

// progressPercent 筹款进度百分比
func progressPercent(project *model.Project) int {
	if !project.GoalAmount.IsPositive() {
		return 0
	}
	ratio := project.CurrentAmount.Div(project.GoalAmount).InexactFloat64()
	return int(math.Round(ratio * 100))
}
