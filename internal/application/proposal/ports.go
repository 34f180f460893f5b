package proposal

import (
	"context"

	"github.com/tuananh-dev/qltb-api/internal/domain/repository"
)

// TxRunner chạy một hàm trong transaction CSDL, truyền vào repository gắn với
// transaction đó. Mọi thao tác đọc-kiểm tra-ghi của quy trình duyệt phải đi
// qua đây để giữ tính nguyên tử trước các lời gọi đồng thời.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		proposals repository.ProposalRepository,
		movements repository.MovementRepository,
	) error) error
}
