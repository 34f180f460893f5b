// Package proposal chứa máy trạng thái duyệt đề xuất thiết bị:
// bảng chuyển trạng thái đóng và hàm Apply thuần, không phụ thuộc hạ tầng.
package proposal

import (
	"time"

	"github.com/tuananh-dev/qltb-api/internal/domain"
	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
)

// Op thao tác chuyển trạng thái trên một đề xuất.
type Op string

const (
	OpProcess          Op = "process"            // IT tiếp nhận xử lý
	OpSubmitToDirector Op = "submit_to_director" // IT trình giám đốc
	OpITReject         Op = "it_reject"          // IT từ chối
	OpApprove          Op = "approve"            // giám đốc duyệt
	OpReject           Op = "reject"             // giám đốc từ chối
	OpComplete         Op = "complete"           // IT hoàn thành
)

// Rule một dòng trong bảng chuyển trạng thái: ai được làm, từ trạng thái nào,
// sang trạng thái nào, và đầu vào nào là bắt buộc.
type Rule struct {
	Actor          entity.Role
	From           []entity.ProposalStatus
	To             entity.ProposalStatus
	NoteRequired   bool
	ResultRequired bool
}

// rules bảng chuyển trạng thái đóng; thao tác ngoài bảng là bất hợp lệ.
var rules = map[Op]Rule{
	OpProcess: {
		Actor: entity.RoleIT,
		From:  []entity.ProposalStatus{entity.StatusPending},
		To:    entity.StatusITProcessing,
	},
	OpSubmitToDirector: {
		Actor: entity.RoleIT,
		From:  []entity.ProposalStatus{entity.StatusITProcessing},
		To:    entity.StatusWaitingApproval,
	},
	OpITReject: {
		Actor:        entity.RoleIT,
		From:         []entity.ProposalStatus{entity.StatusPending, entity.StatusITProcessing},
		To:           entity.StatusITRejected,
		NoteRequired: true,
	},
	OpApprove: {
		Actor: entity.RoleDirector,
		From:  []entity.ProposalStatus{entity.StatusWaitingApproval},
		To:    entity.StatusApproved,
	},
	OpReject: {
		Actor:        entity.RoleDirector,
		From:         []entity.ProposalStatus{entity.StatusWaitingApproval},
		To:           entity.StatusRejected,
		NoteRequired: true,
	},
	OpComplete: {
		Actor:          entity.RoleIT,
		From:           []entity.ProposalStatus{entity.StatusApproved},
		To:             entity.StatusCompleted,
		ResultRequired: true,
	},
}

// RuleFor trả về dòng bảng cho một thao tác.
func RuleFor(op Op) (Rule, bool) {
	r, ok := rules[op]
	return r, ok
}

// allowsFrom kiểm tra trạng thái hiện tại có nằm trong danh sách cho phép.
func (r Rule) allowsFrom(s entity.ProposalStatus) bool {
	for _, from := range r.From {
		if from == s {
			return true
		}
	}
	return false
}

// Apply áp một thao tác lên đề xuất: kiểm tra vai trò, đầu vào bắt buộc rồi mới
// kiểm tra trạng thái; thất bại thì đề xuất giữ nguyên, không ghi dở dang.
// Thứ tự kiểm tra: vai trò → đầu vào (ErrValidation trước khi đụng trạng thái)
// → trạng thái nguồn (ErrInvalidTransition).
func Apply(p *entity.Proposal, op Op, actor entity.Identity, note, result string, now time.Time) error {
	rule, ok := RuleFor(op)
	if !ok {
		return domain.ErrInvalidTransition
	}
	if actor.Role != rule.Actor {
		return domain.ErrForbidden
	}
	if rule.NoteRequired && note == "" {
		return domain.ErrValidation
	}
	if rule.ResultRequired && result == "" {
		return domain.ErrValidation
	}
	if !rule.allowsFrom(p.Status) {
		return domain.ErrInvalidTransition
	}

	switch op {
	case OpProcess:
		p.ITUserID = actor.UserID
		p.ITNote = note
		p.ITAt = &now
	case OpSubmitToDirector:
		// Không truyền ghi chú thì giữ lại ghi chú đã nhập lúc tiếp nhận.
		if note != "" {
			p.ITNote = note
		}
		p.ITAt = &now
	case OpITReject:
		if p.ITUserID == "" {
			p.ITUserID = actor.UserID
		}
		p.ITNote = note
		p.ITAt = &now
	case OpApprove, OpReject:
		p.DirectorID = actor.UserID
		p.DirectorNote = note
		p.DirectorAt = &now
	case OpComplete:
		p.Result = result
		p.CompletedAt = &now
	}

	p.Status = rule.To
	p.UpdatedAt = now
	return nil
}
