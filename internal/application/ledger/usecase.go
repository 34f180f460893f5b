// Package ledger là use case sổ kho: lập phiếu nhập/xuất/điều chuyển với số
// chứng từ liền mạch theo kỳ, tra cứu tồn và báo cáo tồn kho theo kỳ.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuananh-dev/qltb-api/internal/domain"
	"github.com/tuananh-dev/qltb-api/internal/domain/docnum"
	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
	"github.com/tuananh-dev/qltb-api/internal/domain/repository"
)

// UseCase sổ kho. Mọi thao tác ghi chạy trong một transaction; việc cấp số
// được tuần tự hóa theo bucket {prefix}{năm}{tháng} bằng khóa dòng, có chỉ
// mục duy nhất trên doc_no làm lưới chắn cuối và một lần cấp lại khi va chạm.
type UseCase struct {
	txRunner  TxRunner
	movements repository.MovementRepository
}

// NewUseCase khởi tạo use case.
func NewUseCase(txRunner TxRunner, movements repository.MovementRepository) *UseCase {
	return &UseCase{txRunner: txRunner, movements: movements}
}

// CreateInput đầu vào lập một chứng từ kho.
type CreateInput struct {
	Kind          string
	Date          time.Time // zero → thời điểm hiện tại
	ItemID        string
	WarehouseID   string
	ToWarehouseID string
	Giver         string
	Receiver      string
	Quantity      int // 0 → mặc định 1
	UnitPrice     *decimal.Decimal
	Note          string
}

func (in *CreateInput) normalize(now time.Time) error {
	if in.Date.IsZero() {
		in.Date = now
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 || in.ItemID == "" {
		return domain.ErrValidation
	}
	switch in.Kind {
	case entity.MovementKindIn:
		if in.WarehouseID == "" {
			return domain.ErrValidation
		}
		if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
			return domain.ErrValidation
		}
	case entity.MovementKindOut:
		if in.WarehouseID == "" {
			return domain.ErrValidation
		}
		in.UnitPrice = nil
	case entity.MovementKindTransfer:
		// Điều chuyển đổi người giữ thiết bị; bên giao và bên nhận phải khác nhau.
		if in.Giver == "" || in.Receiver == "" || in.Giver == in.Receiver {
			return domain.ErrValidation
		}
		if in.ToWarehouseID != "" && in.ToWarehouseID == in.WarehouseID {
			return domain.ErrValidation
		}
		in.UnitPrice = nil
	default:
		return domain.ErrValidation
	}
	return nil
}

// CreateMovement lập chứng từ: kiểm tra đầu vào rồi chạy trọn kiểm tra nghiệp
// vụ + cấp số + ghi phiếu trong một transaction. Phiếu xuất bị từ chối nếu tồn
// sau xuất âm; điều chuyển yêu cầu bên giao đang giữ thiết bị. Va chạm số
// chứng từ được cấp lại đúng một lần trước khi trả ErrConflict.
func (uc *UseCase) CreateMovement(ctx context.Context, actor entity.Identity, in CreateInput) (*entity.Movement, error) {
	if actor.UserID == "" || !actor.Role.Valid() {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	if err := in.normalize(now); err != nil {
		return nil, err
	}
	prefix, err := docnum.PrefixFor(in.Kind)
	if err != nil {
		return nil, err
	}

	// Lỗi vi phạm chỉ mục duy nhất làm PostgreSQL hủy cả transaction (mọi câu
	// lệnh sau đó trả 25P02), nên mỗi lần cấp số phải chạy trong một
	// transaction mới: thua cuộc đua thì mở transaction khác và cấp lại
	// đúng một lần.
	for attempt := 0; attempt < 2; attempt++ {
		var out *entity.Movement
		err = uc.txRunner.Run(ctx, func(_ repository.ProposalRepository, movements repository.MovementRepository) error {
			switch in.Kind {
			case entity.MovementKindOut:
				bal, err := movements.Balance(in.ItemID, in.WarehouseID)
				if err != nil {
					return err
				}
				if bal.Quantity < in.Quantity {
					return domain.ErrInsufficientStock
				}
			case entity.MovementKindTransfer:
				held, err := movements.HeldBy(in.ItemID, in.Giver)
				if err != nil {
					return err
				}
				if !held {
					return fmt.Errorf("bên giao %q không đang giữ thiết bị này: %w", in.Giver, domain.ErrValidation)
				}
			}

			m := &entity.Movement{
				Kind:          in.Kind,
				Date:          in.Date,
				ItemID:        in.ItemID,
				WarehouseID:   in.WarehouseID,
				ToWarehouseID: in.ToWarehouseID,
				Giver:         in.Giver,
				Receiver:      in.Receiver,
				Quantity:      in.Quantity,
				UnitPrice:     in.UnitPrice,
				Note:          in.Note,
				CreatedBy:     actor.UserID,
			}
			// Số cấp theo kỳ lịch hiện tại, kể cả khi ngày chứng từ ghi lùi.
			last, err := movements.LastDocNo(docnum.Bucket(prefix, now))
			if err != nil {
				return err
			}
			if m.DocNo, err = docnum.Next(prefix, now, last); err != nil {
				return err
			}
			if err := movements.Create(m); err != nil {
				return err
			}
			out = m
			return nil
		})
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
	}
	return nil, domain.ErrConflict
}

// UpdateInput các trường sửa được của phiếu nhập/xuất; nil giữ nguyên.
type UpdateInput struct {
	Date      *time.Time
	Giver     *string
	Receiver  *string
	Quantity  *int
	UnitPrice *decimal.Decimal
	Note      *string
}

// UpdateMovement sửa phiếu nhập/xuất tại chỗ, vô điều kiện (không kiểm tra
// lại các phiếu đã tiêu thụ số liệu cũ). Điều chuyển chỉ lập và xóa,
// không sửa.
func (uc *UseCase) UpdateMovement(ctx context.Context, actor entity.Identity, id string, in UpdateInput) (*entity.Movement, error) {
	if actor.UserID == "" || !actor.Role.Valid() {
		return nil, domain.ErrForbidden
	}
	var out *entity.Movement
	err := uc.txRunner.Run(ctx, func(_ repository.ProposalRepository, movements repository.MovementRepository) error {
		m, err := movements.GetByID(id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if m.Kind == entity.MovementKindTransfer {
			return fmt.Errorf("phiếu điều chuyển không sửa được: %w", domain.ErrValidation)
		}
		if in.Date != nil {
			m.Date = *in.Date
		}
		if in.Giver != nil {
			m.Giver = *in.Giver
		}
		if in.Receiver != nil {
			m.Receiver = *in.Receiver
		}
		if in.Quantity != nil {
			if *in.Quantity <= 0 {
				return domain.ErrValidation
			}
			m.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			if m.Kind != entity.MovementKindIn || in.UnitPrice.IsNegative() {
				return domain.ErrValidation
			}
			m.UnitPrice = in.UnitPrice
		}
		if in.Note != nil {
			m.Note = *in.Note
		}
		if err := movements.Update(m); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteMovement xóa cứng một chứng từ (không ghi bút toán đảo). Xóa phiếu
// nhập bị chặn nếu làm tồn của cặp thiết bị+kho âm.
func (uc *UseCase) DeleteMovement(ctx context.Context, actor entity.Identity, id string) error {
	if actor.UserID == "" || !actor.Role.Valid() {
		return domain.ErrForbidden
	}
	return uc.txRunner.Run(ctx, func(_ repository.ProposalRepository, movements repository.MovementRepository) error {
		m, err := movements.GetByID(id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if m.Kind == entity.MovementKindIn {
			bal, err := movements.Balance(m.ItemID, m.WarehouseID)
			if err != nil {
				return err
			}
			if bal.Quantity-m.Quantity < 0 {
				return domain.ErrInsufficientStock
			}
		}
		return movements.Delete(id)
	})
}

// ListMovements liệt kê chứng từ theo loại (rỗng = tất cả), phân trang.
func (uc *UseCase) ListMovements(ctx context.Context, kind string, page, limit int) ([]*entity.Movement, int64, error) {
	if kind != "" {
		switch kind {
		case entity.MovementKindIn, entity.MovementKindOut, entity.MovementKindTransfer:
		default:
			return nil, 0, domain.ErrValidation
		}
	}
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	return uc.movements.List(kind, limit, (page-1)*limit)
}

// GetBalance tồn hiện thời Σnhập − Σxuất của cặp thiết bị+kho trên toàn bộ
// lịch sử; cặp chưa có dữ liệu trả về 0 với tên rỗng.
func (uc *UseCase) GetBalance(ctx context.Context, itemID, warehouseID string) (*entity.Balance, error) {
	if itemID == "" || warehouseID == "" {
		return nil, domain.ErrValidation
	}
	return uc.movements.Balance(itemID, warehouseID)
}

// GetPeriodReport báo cáo tồn kho theo kỳ [start, end]. start bỏ trống mặc
// định ngày đầu tháng hiện tại, end bỏ trống mặc định hôm nay.
func (uc *UseCase) GetPeriodReport(ctx context.Context, start, end *time.Time) ([]*entity.PeriodRow, error) {
	now := time.Now()
	s := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	e := now
	if start != nil {
		s = *start
	}
	if end != nil {
		e = *end
	}
	if e.Before(s) {
		return nil, domain.ErrValidation
	}
	return uc.movements.PeriodReport(s, e)
}
