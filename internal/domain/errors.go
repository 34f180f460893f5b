package domain

import "errors"

// Lỗi nghiệp vụ của hệ thống (không phụ thuộc tầng hạ tầng).
// Thông điệp hiển thị trực tiếp cho người dùng nên viết tiếng Việt.
var (
	ErrNotFound          = errors.New("không tìm thấy bản ghi")
	ErrInvalidTransition = errors.New("trạng thái hiện tại không cho phép thao tác này")
	ErrValidation        = errors.New("dữ liệu không hợp lệ")
	ErrForbidden         = errors.New("không có quyền thực hiện thao tác")
	ErrConflict          = errors.New("dữ liệu bị thay đổi đồng thời, vui lòng thử lại")
	ErrInsufficientStock = errors.New("số lượng tồn kho không đủ")
)
