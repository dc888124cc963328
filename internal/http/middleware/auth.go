package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AdminAuth accepts requests carrying "Authorization: Bearer <password>".
// An empty password rejects every request.
func AdminAuth(password string) fiber.Handler {
	want := []byte(password)
	return func(c *fiber.Ctx) error {
		token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || len(want) == 0 || subtle.ConstantTimeCompare([]byte(token), want) != 1 {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		return c.Next()
	}
}
