// file: internals/helpers/auth/caller.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Caller adalah identitas pemanggil yang sudah diverifikasi middleware JWT.
// Semua controller membaca identitas dari sini, bukan dari locals mentah,
// supaya perbandingan id selalu lewat satu jalur.
type Caller struct {
	ID   uuid.UUID
	Role string
}

// GetCaller membaca user_id & userRole dari locals (diisi AuthMiddleware).
func GetCaller(c *fiber.Ctx) (Caller, error) {
	idStr, ok := c.Locals("user_id").(string)
	if !ok || strings.TrimSpace(idStr) == "" {
		return Caller{}, fiber.NewError(fiber.StatusUnauthorized, "User ID tidak ditemukan di token")
	}
	id, err := uuid.Parse(strings.TrimSpace(idStr))
	if err != nil {
		return Caller{}, fiber.NewError(fiber.StatusUnauthorized, "User ID di token tidak valid")
	}
	role, _ := c.Locals("userRole").(string)
	return Caller{ID: id, Role: strings.ToLower(strings.TrimSpace(role))}, nil
}

func (cl Caller) Is(role string) bool { return cl.Role == role }

func (cl Caller) IsAnyOf(roles ...string) bool {
	for _, r := range roles {
		if cl.Role == r {
			return true
		}
	}
	return false
}
