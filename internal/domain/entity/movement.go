package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loại chứng từ kho.
const (
	MovementKindIn       = "stock_in"  // phiếu nhập
	MovementKindOut      = "stock_out" // phiếu xuất
	MovementKindTransfer = "transfer"  // phiếu điều chuyển
)

// Movement một chứng từ kho: nhập, xuất hoặc điều chuyển.
// Điều chuyển chỉ thay đổi người giữ thiết bị, không làm thay đổi tồn kho.
type Movement struct {
	ID    string
	DocNo string // số chứng từ duy nhất, ví dụ PN202601-003
	Kind  string
	Date  time.Time

	ItemID        string
	WarehouseID   string // kho nhập/xuất; với điều chuyển là kho nguồn (có thể rỗng)
	ToWarehouseID string // kho đích, chỉ dùng cho điều chuyển

	Giver    string // người giao: mã nhân sự/nhà cung cấp hoặc tên tự do
	Receiver string // người nhận

	Quantity  int              // số nguyên dương, mặc định 1
	UnitPrice *decimal.Decimal // đơn giá, chỉ có ở phiếu nhập
	Note      string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Balance tồn kho hiện thời của một thiết bị tại một kho (Σnhập − Σxuất, toàn thời gian).
type Balance struct {
	ItemID        string
	ItemName      string
	WarehouseID   string
	WarehouseName string
	Quantity      int
}

// PeriodRow một dòng báo cáo tồn kho theo kỳ: closing = opening + in − out.
// Dòng có cả bốn chỉ số bằng 0 bị loại khỏi báo cáo.
type PeriodRow struct {
	ItemID   string
	ItemName string
	Opening  int
	In       int
	Out      int
	Closing  int
}
