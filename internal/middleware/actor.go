package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"github.com/radaiko/ReadRiser/pkg/logger"
	"github.com/radaiko/ReadRiser/pkg/utils"
)

const actorIDKey = "actorID"

// ActorHeader carries the acting user's id. The value is trusted as-is;
// whoever terminates authentication in front of this service owns verifying
// it. Only presence and uuid shape are checked here.
const ActorHeader = "X-Actor-ID"

func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "http://localhost:3001,http://127.0.0.1:3001",
		AllowHeaders: "Origin, Content-Type, Accept, X-Actor-ID",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

// RequireActor rejects requests without a well-formed actor header. Whether
// the id resolves to a user is the engines' concern, not the transport's.
func RequireActor(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Get(ActorHeader))
	if raw == "" {
		logger.Warn("actor_missing_header", map[string]interface{}{
			"ip":   c.IP(),
			"path": c.Path(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "missing actor id")
	}

	actorID, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("actor_invalid_header", map[string]interface{}{
			"ip":   c.IP(),
			"path": c.Path(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "invalid actor id")
	}

	c.Locals(actorIDKey, actorID)
	return c.Next()
}

// GetActorID returns the actor id stashed by RequireActor.
func GetActorID(c *fiber.Ctx) (uuid.UUID, bool) {
	value := c.Locals(actorIDKey)
	if value == nil {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
