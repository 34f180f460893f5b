// Package proposal là use case quy trình duyệt đề xuất thiết bị:
// tạo, chuyển trạng thái theo bảng đóng, liệt kê theo quyền và thống kê.
package proposal

import (
	"context"
	"fmt"
	"time"

	"github.com/tuananh-dev/qltb-api/internal/domain"
	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
	"github.com/tuananh-dev/qltb-api/internal/domain/proposal"
	"github.com/tuananh-dev/qltb-api/internal/domain/repository"
)

// DefaultLimit số bản ghi mỗi trang khi client không truyền limit.
const DefaultLimit = 20

// UseCase quy trình duyệt đề xuất. Mọi chuyển trạng thái chạy trong một
// transaction với khóa dòng; đọc đi thẳng vào repository dùng pool.
type UseCase struct {
	txRunner  TxRunner
	proposals repository.ProposalRepository
}

// NewUseCase khởi tạo use case.
func NewUseCase(txRunner TxRunner, proposals repository.ProposalRepository) *UseCase {
	return &UseCase{txRunner: txRunner, proposals: proposals}
}

// CreateInput đầu vào tạo đề xuất.
type CreateInput struct {
	Type        entity.ProposalType
	Title       string
	Description string
	Reason      string
	Priority    entity.Priority
	EquipmentID string
}

// Create tạo đề xuất mới ở trạng thái pending. Type và Title bắt buộc;
// Priority bỏ trống mặc định medium. Người tạo là bất kỳ người dùng đã
// đăng nhập (mọi vai trò hợp lệ).
func (uc *UseCase) Create(ctx context.Context, actor entity.Identity, in CreateInput) (*entity.Proposal, error) {
	if actor.UserID == "" || !actor.Role.Valid() {
		return nil, domain.ErrForbidden
	}
	if in.Title == "" || !in.Type.Valid() {
		return nil, domain.ErrValidation
	}
	if in.Priority == "" {
		in.Priority = entity.PriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, domain.ErrValidation
	}

	now := time.Now()
	p := &entity.Proposal{
		Type:          in.Type,
		Title:         in.Title,
		Description:   in.Description,
		Reason:        in.Reason,
		Priority:      in.Priority,
		EquipmentID:   in.EquipmentID,
		CreatedByID:   actor.UserID,
		CreatedByName: actor.Name,
		Status:        entity.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.proposals.Create(p); err != nil {
		return nil, fmt.Errorf("tạo đề xuất: %w", err)
	}
	return p, nil
}

// Transition áp một thao tác của bảng chuyển trạng thái lên đề xuất.
// Chạy trong một transaction: khóa dòng, kiểm tra rồi ghi có điều kiện trên
// status cũ (compare-and-swap) — hai lời gọi đồng thời cùng thấy một trạng
// thái thì chỉ một lời thành công.
func (uc *UseCase) Transition(ctx context.Context, id string, op proposal.Op, actor entity.Identity, note, result string) (*entity.Proposal, error) {
	var out *entity.Proposal
	err := uc.txRunner.Run(ctx, func(proposals repository.ProposalRepository, _ repository.MovementRepository) error {
		p, err := proposals.GetForUpdate(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		expected := p.Status
		if err := proposal.Apply(p, op, actor, note, result, time.Now()); err != nil {
			return err
		}
		ok, err := proposals.UpdateStatus(p, expected)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListInput điều kiện liệt kê đề xuất.
type ListInput struct {
	Status entity.ProposalStatus
	Type   entity.ProposalType
	Page   int
	Limit  int
}

// List trả về danh sách đề xuất theo quyền của người gọi: vai trò user chỉ
// thấy đề xuất mình tạo; it/director/admin thấy tất cả, lọc tùy chọn theo
// trạng thái và loại.
func (uc *UseCase) List(ctx context.Context, actor entity.Identity, in ListInput) ([]*entity.Proposal, int64, error) {
	if actor.UserID == "" || !actor.Role.Valid() {
		return nil, 0, domain.ErrForbidden
	}
	if in.Status != "" && !in.Status.Valid() {
		return nil, 0, domain.ErrValidation
	}
	if in.Type != "" && !in.Type.Valid() {
		return nil, 0, domain.ErrValidation
	}
	if in.Limit <= 0 {
		in.Limit = DefaultLimit
	}
	if in.Page <= 0 {
		in.Page = 1
	}

	filter := repository.ProposalFilter{
		Status: in.Status,
		Type:   in.Type,
		Limit:  in.Limit,
		Offset: (in.Page - 1) * in.Limit,
	}
	if !actor.Role.ViewAll() {
		filter.CreatedByID = actor.UserID
	}
	return uc.proposals.List(filter)
}

// Get đọc chi tiết một đề xuất. Vai trò user chỉ được xem đề xuất mình tạo.
func (uc *UseCase) Get(ctx context.Context, actor entity.Identity, id string) (*entity.Proposal, error) {
	p, err := uc.proposals.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.Role.ViewAll() && p.CreatedByID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// Stats số lượng đề xuất theo nhóm trạng thái, tính trên toàn bảng
// (phục vụ dashboard, không tách theo người dùng).
func (uc *UseCase) Stats(ctx context.Context) (*repository.ProposalStats, error) {
	return uc.proposals.Stats()
}
