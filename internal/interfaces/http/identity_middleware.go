package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tuananh-dev/qltb-api/internal/application/dto"
	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
)

// Khóa Locals cho định danh người gọi trong Fiber.
const (
	LocalUserID   = "user_id"
	LocalUserName = "user_name"
	LocalUserRole = "user_role"
)

// Header do gateway upstream gắn sau khi xác thực. Dịch vụ này không tự
// kiểm tra phiên/mật khẩu; nó tin cặp (userId, role) đã được phân giải.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
)

// IdentityMiddleware đọc định danh từ header gateway và đưa vào c.Locals.
// Thiếu userId hoặc vai trò không hợp lệ thì chặn với 401.
func IdentityMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get(HeaderUserID)
		role := entity.Role(c.Get(HeaderUserRole))
		if userID == "" || !role.Valid() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "thiếu định danh người dùng từ gateway",
			})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserName, c.Get(HeaderUserName))
		c.Locals(LocalUserRole, string(role))
		return c.Next()
	}
}

// Caller dựng Identity từ context (sau IdentityMiddleware).
func Caller(c *fiber.Ctx) entity.Identity {
	getString := func(key string) string {
		v := c.Locals(key)
		if v == nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}
	return entity.Identity{
		UserID: getString(LocalUserID),
		Name:   getString(LocalUserName),
		Role:   entity.Role(getString(LocalUserRole)),
	}
}
