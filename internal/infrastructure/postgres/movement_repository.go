package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuananh-dev/qltb-api/internal/domain"
	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
	"github.com/tuananh-dev/qltb-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, doc_no, kind, date, item_id, warehouse_id, to_warehouse_id,
		giver, receiver, quantity, unit_price, note, created_by, created_at, updated_at`

// MovementRepo hiện thực MovementRepository trên PostgreSQL (pool hoặc tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository khởi tạo adapter. Truyền pool hoặc tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create ghi một chứng từ kho. Trùng số chứng từ (chỉ mục duy nhất doc_no)
// trả về ErrConflict để tầng use case cấp số lại.
func (r *MovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.DocNo, m.Kind, m.Date, m.ItemID, m.WarehouseID, m.ToWarehouseID,
		m.Giver, m.Receiver, m.Quantity, m.UnitPrice, m.Note, m.CreatedBy,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("số chứng từ %s đã tồn tại: %w", m.DocNo, domain.ErrConflict)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID đọc một chứng từ theo id; không có trả về nil, nil.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	var m entity.Movement
	err := r.q.QueryRow(context.Background(),
		`SELECT `+movementColumns+` FROM inventory_movements WHERE id = $1`, id).Scan(
		&m.ID, &m.DocNo, &m.Kind, &m.Date, &m.ItemID, &m.WarehouseID, &m.ToWarehouseID,
		&m.Giver, &m.Receiver, &m.Quantity, &m.UnitPrice, &m.Note, &m.CreatedBy,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// Update ghi lại các trường sửa được của chứng từ (không đổi doc_no, kind).
func (r *MovementRepo) Update(m *entity.Movement) error {
	m.UpdatedAt = time.Now()
	query := `
		UPDATE inventory_movements SET
			date = $1, giver = $2, receiver = $3, quantity = $4,
			unit_price = $5, note = $6, updated_at = $7
		WHERE id = $8`
	tag, err := r.q.Exec(context.Background(), query,
		m.Date, m.Giver, m.Receiver, m.Quantity, m.UnitPrice, m.Note, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete xóa cứng một chứng từ.
func (r *MovementRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM inventory_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List liệt kê chứng từ theo loại (rỗng = tất cả), mới nhất trước.
func (r *MovementRepo) List(kind string, limit, offset int) ([]*entity.Movement, int64, error) {
	where := ""
	args := []any{}
	pos := 1
	if kind != "" {
		where = fmt.Sprintf(" WHERE kind = $%d", pos)
		args = append(args, kind)
		pos++
	}

	var total int64
	if err := r.q.QueryRow(context.Background(), "SELECT count(*) FROM inventory_movements"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := "SELECT " + movementColumns + " FROM inventory_movements" + where +
		fmt.Sprintf(" ORDER BY date DESC, doc_no DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.DocNo, &m.Kind, &m.Date, &m.ItemID, &m.WarehouseID, &m.ToWarehouseID,
			&m.Giver, &m.Receiver, &m.Quantity, &m.UnitPrice, &m.Note, &m.CreatedBy,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

// LastDocNo số chứng từ lớn nhất của một bucket, chuỗi rỗng nếu chưa có.
// Gọi trong transaction thì FOR UPDATE khóa dòng mới nhất của bucket, tuần
// tự hóa việc cấp số trong cùng kỳ. Sắp theo độ dài trước rồi mới theo chuỗi
// để thứ tự vượt 999 (4 chữ số) vẫn đứng sau.
func (r *MovementRepo) LastDocNo(bucket string) (string, error) {
	var docNo string
	err := r.q.QueryRow(context.Background(), `
		SELECT doc_no FROM inventory_movements
		WHERE doc_no LIKE $1 || '-%'
		ORDER BY length(doc_no) DESC, doc_no DESC
		LIMIT 1
		FOR UPDATE`, bucket).Scan(&docNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last doc_no: %w", err)
	}
	return docNo, nil
}

// Balance tồn hiện thời Σnhập − Σxuất của cặp thiết bị+kho trên toàn bộ lịch
// sử; điều chuyển không tính vào tồn. Cặp không có dữ liệu trả về 0, tên rỗng.
func (r *MovementRepo) Balance(itemID, warehouseID string) (*entity.Balance, error) {
	b := &entity.Balance{ItemID: itemID, WarehouseID: warehouseID}
	err := r.q.QueryRow(context.Background(), `
		SELECT
			COALESCE(SUM(CASE m.kind WHEN 'stock_in' THEN m.quantity WHEN 'stock_out' THEN -m.quantity ELSE 0 END), 0),
			COALESCE(MAX(i.name), ''),
			COALESCE(MAX(w.name), '')
		FROM inventory_movements m
		LEFT JOIN items i ON i.id = m.item_id
		LEFT JOIN warehouses w ON w.id = m.warehouse_id
		WHERE m.item_id = $1 AND m.warehouse_id = $2
		  AND m.kind IN ('stock_in', 'stock_out')`,
		itemID, warehouseID).Scan(&b.Quantity, &b.ItemName, &b.WarehouseName)
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}
	return b, nil
}

// PeriodReport gom theo thiết bị: opening = nhập−xuất trước start; in/out
// trong [start, end]; closing = opening + in − out. Dòng toàn 0 bị loại.
func (r *MovementRepo) PeriodReport(start, end time.Time) ([]*entity.PeriodRow, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT item_id, item_name, opening, in_qty, out_qty, opening + in_qty - out_qty AS closing
		FROM (
			SELECT m.item_id,
				COALESCE(MAX(i.name), '') AS item_name,
				COALESCE(SUM(CASE WHEN m.date < $1 AND m.kind = 'stock_in' THEN m.quantity
					WHEN m.date < $1 AND m.kind = 'stock_out' THEN -m.quantity ELSE 0 END), 0) AS opening,
				COALESCE(SUM(CASE WHEN m.date >= $1 AND m.date <= $2 AND m.kind = 'stock_in' THEN m.quantity ELSE 0 END), 0) AS in_qty,
				COALESCE(SUM(CASE WHEN m.date >= $1 AND m.date <= $2 AND m.kind = 'stock_out' THEN m.quantity ELSE 0 END), 0) AS out_qty
			FROM inventory_movements m
			LEFT JOIN items i ON i.id = m.item_id
			WHERE m.kind IN ('stock_in', 'stock_out') AND m.date <= $2
			GROUP BY m.item_id
		) t
		WHERE opening <> 0 OR in_qty <> 0 OR out_qty <> 0
		ORDER BY item_name, item_id`, start, end)
	if err != nil {
		return nil, fmt.Errorf("period report: %w", err)
	}
	defer rows.Close()

	var list []*entity.PeriodRow
	for rows.Next() {
		var row entity.PeriodRow
		if err := rows.Scan(&row.ItemID, &row.ItemName, &row.Opening, &row.In, &row.Out, &row.Closing); err != nil {
			return nil, fmt.Errorf("scan period row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// HeldBy kiểm tra holder có đang giữ thiết bị: lượng đã nhận (phiếu xuất hoặc
// điều chuyển ghi holder là người nhận) trừ lượng đã giao đi (điều chuyển ghi
// holder là bên giao) còn dương. Ai đã điều chuyển hết đi thì không còn giữ.
func (r *MovementRepo) HeldBy(itemID, holder string) (bool, error) {
	var held bool
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(CASE WHEN receiver = $2 THEN quantity ELSE -quantity END), 0) > 0
		FROM inventory_movements
		WHERE item_id = $1
		  AND ((receiver = $2 AND kind IN ('stock_out', 'transfer'))
		    OR (giver = $2 AND kind = 'transfer'))`,
		itemID, holder).Scan(&held)
	if err != nil {
		return false, fmt.Errorf("held by: %w", err)
	}
	return held, nil
}
