// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	database "readingroom_backend/internals/databases"
	userModel "readingroom_backend/internals/features/users/user/model"
	helper "readingroom_backend/internals/helpers"
	helpersAuth "readingroom_backend/internals/helpers/auth"
)

type TokenChecker interface {
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*userModel.UserModel, error)
}

type Options struct {
	Secret string
	Tokens TokenChecker
	Users  UserFinder
	Log    *zap.Logger
}

// AuthMiddleware validates the access token and loads the caller into Locals.
func AuthMiddleware(opts Options) fiber.Handler {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		tokenString, fromCookie, err := extractToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		// browsers attach the cookie cross-site; the header they cannot forge
		if fromCookie && !helper.IsSafeMethod(c.Method()) {
			if err := helper.CheckCSRFCookieHeader(c); err != nil {
				return err
			}
		}

		if opts.Secret == "" {
			log.Error("JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		// blacklist
		if opts.Tokens != nil {
			listed, err := opts.Tokens.IsBlacklisted(c.UserContext(), tokenString)
			if err != nil {
				log.Error("blacklist lookup failed", zap.Error(err))
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			if listed {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			}
		}

		// signature, expiry, type
		claims, err := helpersAuth.ParseToken(opts.Secret, tokenString, helpersAuth.TypeAccess)
		if err != nil {
			log.Debug("token rejected", zap.Error(err))
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or expired token")
		}
		subject, err := helpersAuth.SubjectFromClaims(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		role := subject.Role
		if opts.Users != nil {
			user, err := opts.Users.FindByID(c.UserContext(), subject.UserID)
			if err != nil {
				if errors.Is(err, database.ErrNotFound) {
					return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
				}
				log.Error("user lookup failed", zap.Error(err))
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			if !user.IsActive {
				return fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
			}
			// the stored role wins over a stale claim
			role = user.Role
		}

		c.Locals(helper.LocUserID, subject.UserID)
		c.Locals(helper.LocUserRole, role)
		c.Locals(helper.LocRawToken, tokenString)
		c.Locals("user_name", subject.UserName)
		return c.Next()
	}
}
