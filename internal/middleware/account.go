package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// AccountLocal is the fiber locals key holding the caller's account id
const AccountLocal = "accountID"

// RequireAccount extracts the account identifier from the X-User-ID
// header (or user_id query param) and rejects requests without one.
// Authentication proper is out of scope; this is a pass-through identity.
func RequireAccount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID := c.Get("X-User-ID")
		if accountID == "" {
			accountID = c.Query("user_id")
		}

		if accountID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Unauthorized",
			})
		}

		c.Locals(AccountLocal, accountID)
		return c.Next()
	}
}

// AccountID reads the account id set by RequireAccount
func AccountID(c *fiber.Ctx) string {
	accountID, _ := c.Locals(AccountLocal).(string)
	return accountID
}
