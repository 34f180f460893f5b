package dto

// ErrorResponse phản hồi lỗi chuẩn của API: mã ổn định + thông điệp đọc được.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
