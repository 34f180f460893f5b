package entity

import "time"

// ProposalStatus trạng thái của đề xuất trong quy trình duyệt.
type ProposalStatus string

// Bảy trạng thái của máy trạng thái duyệt đề xuất.
const (
	StatusPending         ProposalStatus = "pending"          // chờ IT tiếp nhận
	StatusITProcessing    ProposalStatus = "it_processing"    // IT đang xử lý
	StatusWaitingApproval ProposalStatus = "waiting_approval" // chờ giám đốc duyệt
	StatusApproved        ProposalStatus = "approved"         // giám đốc đã duyệt
	StatusCompleted       ProposalStatus = "completed"        // IT đã hoàn thành
	StatusRejected        ProposalStatus = "rejected"         // giám đốc từ chối
	StatusITRejected      ProposalStatus = "it_rejected"      // IT từ chối
)

// Valid kiểm tra trạng thái thuộc bảy trạng thái đã định nghĩa.
func (s ProposalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusITProcessing, StatusWaitingApproval,
		StatusApproved, StatusCompleted, StatusRejected, StatusITRejected:
		return true
	}
	return false
}

// Terminal trạng thái kết thúc: không cho phép chuyển tiếp nào nữa.
func (s ProposalStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusITRejected:
		return true
	}
	return false
}

// ProposalType loại đề xuất thiết bị (giá trị lưu trữ theo hệ thống gốc).
type ProposalType string

const (
	TypeUpgrade     ProposalType = "nang_cap" // nâng cấp
	TypeRepair      ProposalType = "sua_chua" // sửa chữa
	TypePurchase    ProposalType = "mua_moi"  // mua mới
	TypeReplacement ProposalType = "thay_the" // thay thế
)

// Valid kiểm tra loại đề xuất hợp lệ.
func (t ProposalType) Valid() bool {
	switch t {
	case TypeUpgrade, TypeRepair, TypePurchase, TypeReplacement:
		return true
	}
	return false
}

// Priority mức độ ưu tiên của đề xuất.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium" // mặc định khi không truyền
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid kiểm tra mức ưu tiên hợp lệ.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Proposal đề xuất thay đổi thiết bị (nâng cấp/sửa chữa/mua mới/thay thế).
// Các trường IT chỉ được gán một lần khi rời pending; các trường giám đốc
// chỉ được gán khi đạt waiting_approval trở đi.
type Proposal struct {
	ID          string
	Type        ProposalType
	Title       string
	Description string
	Reason      string
	Priority    Priority
	EquipmentID string // mã thiết bị liên quan, có thể rỗng

	CreatedByID   string
	CreatedByName string // snapshot tên người tạo tại thời điểm tạo

	Status ProposalStatus

	ITUserID string
	ITNote   string
	ITAt     *time.Time

	DirectorID   string
	DirectorNote string
	DirectorAt   *time.Time

	Result      string // kết quả thực hiện, gán khi hoàn thành
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
