package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tuananh-dev/qltb-api/internal/application/dto"
	appproposal "github.com/tuananh-dev/qltb-api/internal/application/proposal"
	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
	"github.com/tuananh-dev/qltb-api/internal/domain/proposal"
	"github.com/tuananh-dev/qltb-api/pkg/metrics"
)

// ProposalHandler xử lý HTTP cho quy trình duyệt đề xuất thiết bị.
type ProposalHandler struct {
	uc *appproposal.UseCase
}

// NewProposalHandler khởi tạo handler.
func NewProposalHandler(uc *appproposal.UseCase) *ProposalHandler {
	return &ProposalHandler{uc: uc}
}

// Create tạo đề xuất mới (mọi người dùng đã đăng nhập).
func (h *ProposalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProposalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body không hợp lệ"})
	}
	p, err := h.uc.Create(c.Context(), Caller(c), appproposal.CreateInput{
		Type:        entity.ProposalType(in.Type),
		Title:       in.Title,
		Description: in.Description,
		Reason:      in.Reason,
		Priority:    entity.Priority(in.Priority),
		EquipmentID: in.EquipmentID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProposalDTO(p))
}

// Transition trả về handler cho một thao tác của bảng chuyển trạng thái;
// mỗi thao tác có một route riêng.
func (h *ProposalHandler) Transition(op proposal.Op) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.TransitionRequest
		if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body không hợp lệ"})
		}
		p, err := h.uc.Transition(c.Context(), c.Params("id"), op, Caller(c), in.Note, in.Result)
		if err != nil {
			metrics.ProposalTransitions.WithLabelValues(string(op), "error").Inc()
			return respondError(c, err)
		}
		metrics.ProposalTransitions.WithLabelValues(string(op), "ok").Inc()
		return c.JSON(dto.NewProposalDTO(p))
	}
}

// List liệt kê đề xuất theo quyền người gọi, lọc tùy chọn theo status/type,
// phân trang page/limit (limit mặc định 20).
func (h *ProposalHandler) List(c *fiber.Ctx) error {
	items, total, err := h.uc.List(c.Context(), Caller(c), appproposal.ListInput{
		Status: entity.ProposalStatus(c.Query("status")),
		Type:   entity.ProposalType(c.Query("type")),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", appproposal.DefaultLimit),
	})
	if err != nil {
		return respondError(c, err)
	}
	out := dto.ProposalListResponse{
		Items: make([]dto.ProposalDTO, 0, len(items)),
		Total: total,
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", appproposal.DefaultLimit),
	}
	for _, p := range items {
		out.Items = append(out.Items, dto.NewProposalDTO(p))
	}
	return c.JSON(out)
}

// Get đọc chi tiết đề xuất; vai trò user chỉ xem được đề xuất mình tạo.
func (h *ProposalHandler) Get(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.Context(), Caller(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProposalDTO(p))
}

// Stats số lượng đề xuất theo nhóm trạng thái (dashboard).
func (h *ProposalHandler) Stats(c *fiber.Ctx) error {
	s, err := h.uc.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProposalStatsResponse{
		Pending:         s.Pending,
		Processing:      s.Processing,
		WaitingApproval: s.WaitingApproval,
		Approved:        s.Approved,
		Rejected:        s.Rejected,
		Completed:       s.Completed,
	})
}
