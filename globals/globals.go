package globals

import (
	"context"
	"os"
)

// JwtSecret signs access tokens. Must be set via JWT_SECRET in production.
var JwtSecret = []byte(envOr("JWT_SECRET", "change_me_in_production"))

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"
const PermsKey ContextKey = "perms"

var Ctx = context.Background()
