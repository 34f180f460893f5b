package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuananh-dev/qltb-api/internal/application/ledger"
	"github.com/tuananh-dev/qltb-api/internal/application/proposal"
	"github.com/tuananh-dev/qltb-api/internal/domain/repository"
)

// Bảo đảm TxRunner thỏa cả hai cổng transaction của tầng application.
var _ proposal.TxRunner = (*TxRunner)(nil)
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner chạy callback trong một transaction PostgreSQL với repository
// gắn vào transaction đó.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner khởi tạo runner với pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run mở transaction, chạy fn với repo gắn tx rồi Commit; fn trả lỗi thì
// Rollback, không để lại ghi dở dang.
func (r *TxRunner) Run(ctx context.Context, fn func(
	proposals repository.ProposalRepository,
	movements repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("mở transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	proposals := NewProposalRepository(tx)
	movements := NewMovementRepository(tx)

	if err := fn(proposals, movements); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
