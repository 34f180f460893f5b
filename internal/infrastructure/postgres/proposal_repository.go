package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
	"github.com/tuananh-dev/qltb-api/internal/domain/repository"
)

var _ repository.ProposalRepository = (*ProposalRepo)(nil)

const proposalColumns = `id, type, title, description, reason, priority, equipment_id,
		created_by_id, created_by_name, status, it_user_id, it_note, it_at,
		director_id, director_note, director_at, result, completed_at, created_at, updated_at`

// ProposalRepo hiện thực ProposalRepository trên PostgreSQL (dùng được với pool hoặc tx).
type ProposalRepo struct {
	q Querier
}

// NewProposalRepository khởi tạo adapter. Truyền pool hoặc tx (Querier).
func NewProposalRepository(q Querier) *ProposalRepo {
	return &ProposalRepo{q: q}
}

// Create ghi đề xuất mới.
func (r *ProposalRepo) Create(p *entity.Proposal) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO proposals (` + proposalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Type, p.Title, p.Description, p.Reason, p.Priority, p.EquipmentID,
		p.CreatedByID, p.CreatedByName, p.Status, p.ITUserID, p.ITNote, p.ITAt,
		p.DirectorID, p.DirectorNote, p.DirectorAt, p.Result, p.CompletedAt,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert proposal: %w", err)
	}
	return nil
}

func (r *ProposalRepo) get(query, id string) (*entity.Proposal, error) {
	var p entity.Proposal
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Type, &p.Title, &p.Description, &p.Reason, &p.Priority, &p.EquipmentID,
		&p.CreatedByID, &p.CreatedByName, &p.Status, &p.ITUserID, &p.ITNote, &p.ITAt,
		&p.DirectorID, &p.DirectorNote, &p.DirectorAt, &p.Result, &p.CompletedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	return &p, nil
}

// GetByID đọc một đề xuất theo id; không có trả về nil, nil.
func (r *ProposalRepo) GetByID(id string) (*entity.Proposal, error) {
	return r.get(`SELECT `+proposalColumns+` FROM proposals WHERE id = $1`, id)
}

// GetForUpdate đọc và khóa dòng đề xuất (SELECT FOR UPDATE) trong transaction.
func (r *ProposalRepo) GetForUpdate(id string) (*entity.Proposal, error) {
	return r.get(`SELECT `+proposalColumns+` FROM proposals WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStatus ghi lại toàn bộ trường nghiệp vụ với điều kiện trạng thái cũ
// còn nguyên (compare-and-swap trên cột status). Trả về false khi không dòng
// nào khớp — một lời gọi đồng thời đã chuyển trạng thái trước.
func (r *ProposalRepo) UpdateStatus(p *entity.Proposal, expected entity.ProposalStatus) (bool, error) {
	query := `
		UPDATE proposals SET
			status = $1, it_user_id = $2, it_note = $3, it_at = $4,
			director_id = $5, director_note = $6, director_at = $7,
			result = $8, completed_at = $9, updated_at = $10
		WHERE id = $11 AND status = $12`
	tag, err := r.q.Exec(context.Background(), query,
		p.Status, p.ITUserID, p.ITNote, p.ITAt,
		p.DirectorID, p.DirectorNote, p.DirectorAt,
		p.Result, p.CompletedAt, p.UpdatedAt,
		p.ID, expected,
	)
	if err != nil {
		return false, fmt.Errorf("update proposal: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List liệt kê đề xuất theo bộ lọc, mới nhất trước, kèm tổng số bản ghi.
func (r *ProposalRepo) List(filter repository.ProposalFilter) ([]*entity.Proposal, int64, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.Type != "" {
		where += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.CreatedByID != "" {
		where += fmt.Sprintf(" AND created_by_id = $%d", pos)
		args = append(args, filter.CreatedByID)
		pos++
	}

	var total int64
	if err := r.q.QueryRow(context.Background(), "SELECT count(*) FROM proposals"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count proposals: %w", err)
	}

	query := "SELECT " + proposalColumns + " FROM proposals" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	var list []*entity.Proposal
	for rows.Next() {
		var p entity.Proposal
		if err := rows.Scan(
			&p.ID, &p.Type, &p.Title, &p.Description, &p.Reason, &p.Priority, &p.EquipmentID,
			&p.CreatedByID, &p.CreatedByName, &p.Status, &p.ITUserID, &p.ITNote, &p.ITAt,
			&p.DirectorID, &p.DirectorNote, &p.DirectorAt, &p.Result, &p.CompletedAt,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan proposal: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// Stats đếm đề xuất theo trạng thái trên toàn bảng; rejected gộp cả
// it_rejected theo cách dashboard hiển thị.
func (r *ProposalRepo) Stats() (*repository.ProposalStats, error) {
	rows, err := r.q.Query(context.Background(), `SELECT status, count(*) FROM proposals GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("proposal stats: %w", err)
	}
	defer rows.Close()

	var stats repository.ProposalStats
	for rows.Next() {
		var status entity.ProposalStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		switch status {
		case entity.StatusPending:
			stats.Pending = n
		case entity.StatusITProcessing:
			stats.Processing = n
		case entity.StatusWaitingApproval:
			stats.WaitingApproval = n
		case entity.StatusApproved:
			stats.Approved = n
		case entity.StatusRejected, entity.StatusITRejected:
			stats.Rejected += n
		case entity.StatusCompleted:
			stats.Completed = n
		}
	}
	return &stats, rows.Err()
}
