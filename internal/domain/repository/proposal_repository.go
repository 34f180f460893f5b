package repository

import (
	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
)

// ProposalFilter điều kiện lọc danh sách đề xuất.
// CreatedByID khác rỗng → chỉ lấy đề xuất của người đó (vai trò user).
type ProposalFilter struct {
	Status      entity.ProposalStatus
	Type        entity.ProposalType
	CreatedByID string
	Limit       int
	Offset      int
}

// ProposalStats số lượng đề xuất theo từng nhóm trạng thái (cho dashboard).
// Rejected gộp cả rejected và it_rejected.
type ProposalStats struct {
	Pending         int64
	Processing      int64
	WaitingApproval int64
	Approved        int64
	Rejected        int64
	Completed       int64
}

// ProposalRepository cổng lưu trữ đề xuất thiết bị.
type ProposalRepository interface {
	Create(p *entity.Proposal) error
	GetByID(id string) (*entity.Proposal, error)
	// GetForUpdate đọc và khóa dòng (SELECT FOR UPDATE); chỉ gọi trong transaction.
	GetForUpdate(id string) (*entity.Proposal, error)
	// UpdateStatus ghi toàn bộ trường nghiệp vụ với điều kiện status = expected
	// (compare-and-swap); trả về false nếu không dòng nào khớp.
	UpdateStatus(p *entity.Proposal, expected entity.ProposalStatus) (bool, error)
	List(filter ProposalFilter) ([]*entity.Proposal, int64, error)
	Stats() (*ProposalStats, error)
}
