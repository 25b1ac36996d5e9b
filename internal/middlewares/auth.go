package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session keys and the request-local key the authenticated user id travels
// under. Handlers read identity from locals, never from shared state.
const (
	SessionUserIDKey = "user_id"
	LocalUserIDKey   = "user_id"
)

// RequireAuth guards a route with the session cookie. On success the user id
// is placed into the request locals for downstream handlers.
func RequireAuth(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		userID, ok := sess.Get(SessionUserIDKey).(uint)
		if !ok || userID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		c.Locals(LocalUserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals(LocalUserIDKey).(uint)
	return userID
}
