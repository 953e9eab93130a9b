// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"fmt"
	"strings"
	"time"

	"funeral-docs-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// GenerateToken signs an HS256 token carrying user_id, email and role.
func GenerateToken(secret string, userId uuid.UUID, email, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(secret, tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.New(fiber.StatusUnauthorized, "Invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.New(fiber.StatusUnauthorized, "Invalid claims")
	}
	return claims, nil
}

// JwtMiddleware accepts a bearer header, or a token query parameter for
// websocket upgrades where headers cannot be set.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := ""
		if authHeader := ctx.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			tokenStr = ctx.Query("token")
		}
		if tokenStr == "" {
			return apperror.New(fiber.StatusUnauthorized, "Missing token")
		}

		claims, err := ParseToken(secret, tokenStr)
		if err != nil {
			return err
		}

		ctx.Locals(LocalUserID, claims["user_id"])
		ctx.Locals(LocalEmail, claims["email"])
		ctx.Locals(LocalRole, claims["role"])
		return ctx.Next()
	}
}

// RequireRole must run after JwtMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role := CurrentRole(ctx)
		for _, r := range roles {
			if role == r {
				return ctx.Next()
			}
		}
		return apperror.New(fiber.StatusForbidden, "Access denied: insufficient role")
	}
}

func CurrentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := ctx.Locals(LocalUserID).(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}
	return id, nil
}

func CurrentRole(ctx *fiber.Ctx) string {
	role, _ := ctx.Locals(LocalRole).(string)
	return role
}

// ParamUUID reads a path parameter as a UUID, failing with 400.
func ParamUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.BadRequest(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}
