package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tuananh-dev/qltb-api/internal/application/dto"
	"github.com/tuananh-dev/qltb-api/internal/application/ledger"
	"github.com/tuananh-dev/qltb-api/internal/domain/docnum"
	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
	"github.com/tuananh-dev/qltb-api/pkg/metrics"
)

// LedgerHandler xử lý HTTP cho sổ kho: phiếu nhập/xuất/điều chuyển, tồn và
// báo cáo theo kỳ.
type LedgerHandler struct {
	uc *ledger.UseCase
}

// NewLedgerHandler khởi tạo handler.
func NewLedgerHandler(uc *ledger.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// CreateMovement trả về handler lập chứng từ cho một loại cố định
// (mỗi loại một route: phiếu nhập, phiếu xuất, điều chuyển).
func (h *LedgerHandler) CreateMovement(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.CreateMovementRequest
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body không hợp lệ"})
		}
		input := ledger.CreateInput{
			Kind:          kind,
			ItemID:        in.ItemID,
			WarehouseID:   in.WarehouseID,
			ToWarehouseID: in.ToWarehouseID,
			Giver:         in.Giver,
			Receiver:      in.Receiver,
			Quantity:      in.Quantity,
			UnitPrice:     in.UnitPrice,
			Note:          in.Note,
		}
		if in.Date != nil {
			input.Date = *in.Date
		}
		m, err := h.uc.CreateMovement(c.Context(), Caller(c), input)
		if err != nil {
			return respondError(c, err)
		}
		if prefix, err := docnum.PrefixFor(kind); err == nil {
			metrics.DocumentsMinted.WithLabelValues(prefix).Inc()
		}
		return c.Status(fiber.StatusCreated).JSON(dto.MovementCreatedResponse{ID: m.ID, DocNo: m.DocNo})
	}
}

// Update sửa phiếu nhập/xuất tại chỗ.
func (h *LedgerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body không hợp lệ"})
	}
	m, err := h.uc.UpdateMovement(c.Context(), Caller(c), c.Params("id"), ledger.UpdateInput{
		Date:      in.Date,
		Giver:     in.Giver,
		Receiver:  in.Receiver,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Note:      in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMovementDTO(m))
}

// Delete xóa cứng một chứng từ.
func (h *LedgerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteMovement(c.Context(), Caller(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List liệt kê chứng từ, lọc tùy chọn theo loại.
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	items, total, err := h.uc.ListMovements(c.Context(), kindFromQuery(c), c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementDTO, 0, len(items))
	for _, m := range items {
		out = append(out, dto.NewMovementDTO(m))
	}
	return c.JSON(fiber.Map{"items": out, "total": total})
}

// Balance tồn hiện thời của cặp thiết bị+kho.
func (h *LedgerHandler) Balance(c *fiber.Ctx) error {
	b, err := h.uc.GetBalance(c.Context(), c.Query("item_id"), c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewBalanceResponse(b))
}

// PeriodReport báo cáo tồn kho theo kỳ; start/end dạng 2006-01-02, bỏ trống
// mặc định đầu tháng hiện tại và hôm nay.
func (h *LedgerHandler) PeriodReport(c *fiber.Ctx) error {
	var start, end *time.Time
	if s := c.Query("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start phải có dạng YYYY-MM-DD"})
		}
		start = &t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end phải có dạng YYYY-MM-DD"})
		}
		// Lấy trọn ngày end (biên bao gồm).
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}
	rows, err := h.uc.GetPeriodReport(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PeriodRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NewPeriodRowDTO(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "rows": out})
}

// kindFromQuery trả về loại chứng từ hợp lệ từ query (rỗng = tất cả).
func kindFromQuery(c *fiber.Ctx) string {
	switch k := c.Query("kind"); k {
	case entity.MovementKindIn, entity.MovementKindOut, entity.MovementKindTransfer:
		return k
	}
	return ""
}
