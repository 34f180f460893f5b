package entity

// Role vai trò của người dùng, do gateway xác thực và truyền vào từng lời gọi.
type Role string

// Các vai trò trong hệ thống.
const (
	RoleAdmin    Role = "admin"
	RoleIT       Role = "it"
	RoleDirector Role = "director"
	RoleUser     Role = "user"
)

// Valid kiểm tra vai trò có nằm trong danh sách đã định nghĩa không (fail-closed).
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleIT, RoleDirector, RoleUser:
		return true
	}
	return false
}

// ViewAll cho biết vai trò được xem toàn bộ đề xuất hay chỉ đề xuất của mình.
func (r Role) ViewAll() bool {
	switch r {
	case RoleAdmin, RoleIT, RoleDirector:
		return true
	}
	return false
}

// Identity định danh người gọi đã được gateway phân giải (userId + vai trò).
// Core không tự xác thực; mọi thao tác nhận Identity tường minh.
type Identity struct {
	UserID string
	Name   string
	Role   Role
}
