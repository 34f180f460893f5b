package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
)

// CreateMovementRequest body tạo phiếu nhập/xuất/điều chuyển.
// Quantity bỏ trống mặc định 1; UnitPrice chỉ dùng cho phiếu nhập.
type CreateMovementRequest struct {
	Date          *time.Time       `json:"date"`
	ItemID        string           `json:"item_id"`
	WarehouseID   string           `json:"warehouse_id"`
	ToWarehouseID string           `json:"to_warehouse_id"`
	Giver         string           `json:"giver"`
	Receiver      string           `json:"receiver"`
	Quantity      int              `json:"quantity"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	Note          string           `json:"note"`
}

// UpdateMovementRequest body sửa phiếu nhập/xuất (điều chuyển không sửa được).
// Trường nil giữ nguyên giá trị cũ.
type UpdateMovementRequest struct {
	Date      *time.Time       `json:"date"`
	Giver     *string          `json:"giver"`
	Receiver  *string          `json:"receiver"`
	Quantity  *int             `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Note      *string          `json:"note"`
}

// MovementDTO biểu diễn chứng từ trả về cho client.
type MovementDTO struct {
	ID            string           `json:"id"`
	DocNo         string           `json:"doc_no"`
	Kind          string           `json:"kind"`
	Date          time.Time        `json:"date"`
	ItemID        string           `json:"item_id"`
	WarehouseID   string           `json:"warehouse_id,omitempty"`
	ToWarehouseID string           `json:"to_warehouse_id,omitempty"`
	Giver         string           `json:"giver,omitempty"`
	Receiver      string           `json:"receiver,omitempty"`
	Quantity      int              `json:"quantity"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	Note          string           `json:"note,omitempty"`
	CreatedBy     string           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// NewMovementDTO chuyển entity sang DTO.
func NewMovementDTO(m *entity.Movement) MovementDTO {
	return MovementDTO{
		ID:            m.ID,
		DocNo:         m.DocNo,
		Kind:          m.Kind,
		Date:          m.Date,
		ItemID:        m.ItemID,
		WarehouseID:   m.WarehouseID,
		ToWarehouseID: m.ToWarehouseID,
		Giver:         m.Giver,
		Receiver:      m.Receiver,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		Note:          m.Note,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// MovementCreatedResponse kết quả tạo chứng từ: id + số chứng từ đã cấp.
type MovementCreatedResponse struct {
	ID    string `json:"id"`
	DocNo string `json:"doc_no"`
}

// BalanceResponse tồn hiện thời của một thiết bị tại một kho.
type BalanceResponse struct {
	ItemID        string `json:"item_id"`
	ItemName      string `json:"item_name"`
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Quantity      int    `json:"quantity"`
}

// NewBalanceResponse chuyển entity sang DTO.
func NewBalanceResponse(b *entity.Balance) BalanceResponse {
	return BalanceResponse{
		ItemID:        b.ItemID,
		ItemName:      b.ItemName,
		WarehouseID:   b.WarehouseID,
		WarehouseName: b.WarehouseName,
		Quantity:      b.Quantity,
	}
}

// PeriodRowDTO một dòng báo cáo tồn kho theo kỳ.
type PeriodRowDTO struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Opening  int    `json:"opening"`
	In       int    `json:"in"`
	Out      int    `json:"out"`
	Closing  int    `json:"closing"`
}

// NewPeriodRowDTO chuyển entity sang DTO.
func NewPeriodRowDTO(r *entity.PeriodRow) PeriodRowDTO {
	return PeriodRowDTO{
		ItemID:   r.ItemID,
		ItemName: r.ItemName,
		Opening:  r.Opening,
		In:       r.In,
		Out:      r.Out,
		Closing:  r.Closing,
	}
}
