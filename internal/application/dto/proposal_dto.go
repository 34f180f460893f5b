package dto

import (
	"time"

	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
)

// CreateProposalRequest body tạo đề xuất. Type và Title bắt buộc.
type CreateProposalRequest struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
	Priority    string `json:"priority"`
	EquipmentID string `json:"equipment_id"`
}

// TransitionRequest body cho các thao tác chuyển trạng thái.
// Note bắt buộc khi từ chối; Result bắt buộc khi hoàn thành.
type TransitionRequest struct {
	Note   string `json:"note"`
	Result string `json:"result"`
}

// ProposalDTO biểu diễn đề xuất trả về cho client.
type ProposalDTO struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Priority      string     `json:"priority"`
	EquipmentID   string     `json:"equipment_id,omitempty"`
	CreatedByID   string     `json:"created_by_id"`
	CreatedByName string     `json:"created_by_name"`
	Status        string     `json:"status"`
	ITUserID      string     `json:"it_user_id,omitempty"`
	ITNote        string     `json:"it_note,omitempty"`
	ITAt          *time.Time `json:"it_at,omitempty"`
	DirectorID    string     `json:"director_id,omitempty"`
	DirectorNote  string     `json:"director_note,omitempty"`
	DirectorAt    *time.Time `json:"director_at,omitempty"`
	Result        string     `json:"result,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewProposalDTO chuyển entity sang DTO.
func NewProposalDTO(p *entity.Proposal) ProposalDTO {
	return ProposalDTO{
		ID:            p.ID,
		Type:          string(p.Type),
		Title:         p.Title,
		Description:   p.Description,
		Reason:        p.Reason,
		Priority:      string(p.Priority),
		EquipmentID:   p.EquipmentID,
		CreatedByID:   p.CreatedByID,
		CreatedByName: p.CreatedByName,
		Status:        string(p.Status),
		ITUserID:      p.ITUserID,
		ITNote:        p.ITNote,
		ITAt:          p.ITAt,
		DirectorID:    p.DirectorID,
		DirectorNote:  p.DirectorNote,
		DirectorAt:    p.DirectorAt,
		Result:        p.Result,
		CompletedAt:   p.CompletedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ProposalListResponse danh sách đề xuất kèm tổng số bản ghi (phân trang).
type ProposalListResponse struct {
	Items []ProposalDTO `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// ProposalStatsResponse số lượng đề xuất theo nhóm trạng thái (dashboard).
type ProposalStatsResponse struct {
	Pending         int64 `json:"pending"`
	Processing      int64 `json:"processing"`
	WaitingApproval int64 `json:"waiting_approval"`
	Approved        int64 `json:"approved"`
	Rejected        int64 `json:"rejected"`
	Completed       int64 `json:"completed"`
}
