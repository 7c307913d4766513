package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// New returns a middleware that assigns each request a ray id, stored in
// locals and echoed in the X-Ray-Id response header, so log lines for one
// request can be correlated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get("X-Ray-Id")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set("X-Ray-Id", rid)
		return c.Next()
	}
}
