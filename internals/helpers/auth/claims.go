// file: internals/helpers/auth/claims.go
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Yuguda999/school-management-system-sub006/internals/constants"
)

// GetUserIDFromToken reads the user id the auth middleware stored in Locals.
// 401 when not logged in, 400 when the claim is malformed.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, "user_id", "User is not logged in")
}

// GetSchoolIDFromToken reads the active school (tenant) id from Locals.
func GetSchoolIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, "school_id", "School context not found")
}

// GetUserRole returns the role claim, or "" when absent.
func GetUserRole(c *fiber.Ctx) string {
	if v, ok := c.Locals("userRole").(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// IsAdmin reports whether the caller holds an admin-level role. Route
// groups already gate by role; controllers use this for the few branches
// where teacher and admin share an endpoint but not a capability.
func IsAdmin(c *fiber.Ctx) bool {
	role := GetUserRole(c)
	for _, r := range constants.AdminAndAbove {
		if role == r {
			return true
		}
	}
	return false
}

// EnsureAdminSchool is the per-operation capability gate: caller must be
// admin (or owner) on the given school.
func EnsureAdminSchool(c *fiber.Ctx, schoolID uuid.UUID) error {
	if !IsAdmin(c) {
		return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin("this operation"))
	}
	tokenSchool, err := GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	if tokenSchool != schoolID {
		return fiber.NewError(fiber.StatusForbidden, "You are not an admin of this school")
	}
	return nil
}

func localsUUID(c *fiber.Ctx, key, emptyMsg string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, emptyMsg)
	}
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, emptyMsg)
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, emptyMsg)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key+" claim")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key+" claim")
	}
}
