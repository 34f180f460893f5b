package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tuananh-dev/qltb-api/internal/application/ledger"
	appproposal "github.com/tuananh-dev/qltb-api/internal/application/proposal"
	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
	"github.com/tuananh-dev/qltb-api/internal/domain/proposal"
)

// RouterDeps phụ thuộc cho router.
type RouterDeps struct {
	ProposalUC *appproposal.UseCase
	LedgerUC   *ledger.UseCase
}

// Router đăng ký các route của API. Mọi route yêu cầu định danh từ gateway
// (IdentityMiddleware); việc xác thực phiên nằm ngoài dịch vụ này.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", IdentityMiddleware())

	// Đề xuất thiết bị: mỗi thao tác chuyển trạng thái một route riêng.
	proposals := api.Group("/proposals")
	proposalHandler := NewProposalHandler(deps.ProposalUC)
	proposals.Post("/", proposalHandler.Create)
	proposals.Get("/", proposalHandler.List)
	proposals.Get("/stats", proposalHandler.Stats)
	proposals.Get("/:id", proposalHandler.Get)
	proposals.Post("/:id/process", proposalHandler.Transition(proposal.OpProcess))
	proposals.Post("/:id/submit", proposalHandler.Transition(proposal.OpSubmitToDirector))
	proposals.Post("/:id/it-reject", proposalHandler.Transition(proposal.OpITReject))
	proposals.Post("/:id/approve", proposalHandler.Transition(proposal.OpApprove))
	proposals.Post("/:id/reject", proposalHandler.Transition(proposal.OpReject))
	proposals.Post("/:id/complete", proposalHandler.Transition(proposal.OpComplete))

	// Sổ kho: phiếu nhập/xuất/điều chuyển, tồn và báo cáo kỳ.
	inv := api.Group("/inventory")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	inv.Post("/stock-in", ledgerHandler.CreateMovement(entity.MovementKindIn))
	inv.Post("/stock-out", ledgerHandler.CreateMovement(entity.MovementKindOut))
	inv.Post("/transfers", ledgerHandler.CreateMovement(entity.MovementKindTransfer))
	inv.Get("/movements", ledgerHandler.List)
	inv.Put("/movements/:id", ledgerHandler.Update)
	inv.Delete("/movements/:id", ledgerHandler.Delete)
	inv.Get("/balance", ledgerHandler.Balance)
	inv.Get("/report", ledgerHandler.PeriodReport)
}
