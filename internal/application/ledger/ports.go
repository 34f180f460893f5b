package ledger

import (
	"context"

	"github.com/tuananh-dev/qltb-api/internal/domain/repository"
)

// TxRunner chạy một hàm trong transaction CSDL với repository gắn transaction.
// Cấp số chứng từ + ghi phiếu phải nằm chung một transaction để số không bị
// cấp trùng giữa hai lời gọi đồng thời.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		proposals repository.ProposalRepository,
		movements repository.MovementRepository,
	) error) error
}
