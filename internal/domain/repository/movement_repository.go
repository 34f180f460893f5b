package repository

import (
	"time"

	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
)

// MovementRepository cổng lưu trữ chứng từ kho (nhập/xuất/điều chuyển).
type MovementRepository interface {
	Create(m *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	Update(m *entity.Movement) error
	Delete(id string) error
	List(kind string, limit, offset int) ([]*entity.Movement, int64, error)

	// LastDocNo số chứng từ lớn nhất của một bucket (vd "PN202601"), chuỗi rỗng
	// nếu kỳ chưa có chứng từ. Gọi trong transaction thì khóa dòng tìm được
	// (FOR UPDATE) để tuần tự hóa việc cấp số trong cùng kỳ.
	LastDocNo(bucket string) (string, error)

	// Balance tồn hiện thời Σnhập − Σxuất của cặp thiết bị+kho, kèm tên;
	// cặp chưa có dữ liệu trả về 0 với tên rỗng.
	Balance(itemID, warehouseID string) (*entity.Balance, error)

	// PeriodReport các dòng tồn kho theo kỳ [start, end]; opening tính từ
	// các chứng từ trước start; dòng toàn số 0 bị loại.
	PeriodReport(start, end time.Time) ([]*entity.PeriodRow, error)

	// HeldBy kiểm tra holder có đang giữ thiết bị không: lượng đã nhận qua
	// phiếu xuất/điều chuyển trừ lượng đã điều chuyển đi còn dương.
	HeldBy(itemID, holder string) (bool, error)
}
