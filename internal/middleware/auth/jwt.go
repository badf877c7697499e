package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
	"go.uber.org/zap"
)

// contextKey is used for storing the actor in context
type contextKey string

const (
	actorContextKey contextKey = "authenticated_actor"
)

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	Secret    string
	Logger    *zap.Logger
	SkipPaths []string // Paths to skip JWT validation
}

// JWTMiddleware creates a middleware that validates Supabase JWT tokens and
// scopes the request to the workspace named by the X-Workspace-Id header.
// The resulting Actor is stored in the request context; no ambient user
// lookup happens anywhere else.
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Skip JWT validation for certain paths
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			// Extract token from Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				config.Logger.Warn("Missing authorization header",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Authorization header required",
					"code":  "MISSING_AUTH_HEADER",
				})
			}

			// Check Bearer prefix
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				config.Logger.Warn("Invalid authorization header format",
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid authorization header format. Expected: Bearer <token>",
					"code":  "INVALID_AUTH_FORMAT",
				})
			}

			// Parse and validate JWT token
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				// Verify signing method
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(config.Secret), nil
			})

			if err != nil {
				config.Logger.Warn("JWT validation failed",
					zap.Error(err),
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid or expired token",
					"code":  "INVALID_TOKEN",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				config.Logger.Warn("Invalid JWT claims",
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid token claims",
					"code":  "INVALID_CLAIMS",
				})
			}

			// The subject is the authenticated user
			sub, _ := claims["sub"].(string)
			userID, err := uuid.Parse(sub)
			if err != nil {
				config.Logger.Warn("Invalid subject claim",
					zap.String("path", path),
					zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Token subject must be a valid UUID",
					"code":  "INVALID_SUBJECT",
				})
			}

			// Extract workspace scope from X-Workspace-Id header
			workspaceHeader := c.Request().Header.Get("X-Workspace-Id")
			if workspaceHeader == "" {
				config.Logger.Warn("Missing X-Workspace-Id header",
					zap.String("path", path))
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error": "X-Workspace-Id header required",
					"code":  "MISSING_WORKSPACE_ID",
				})
			}

			workspaceID, err := uuid.Parse(workspaceHeader)
			if err != nil {
				config.Logger.Warn("Invalid workspace_id format",
					zap.String("workspace_id", workspaceHeader),
					zap.String("path", path),
					zap.Error(err))
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error": "X-Workspace-Id must be a valid UUID format",
					"code":  "INVALID_WORKSPACE_ID_FORMAT",
				})
			}

			email, _ := claims["email"].(string)

			actor := &model.Actor{
				UserID:      userID,
				WorkspaceID: workspaceID,
				Email:       email,
			}

			// Store actor in request context
			ctx := context.WithValue(c.Request().Context(), actorContextKey, actor)
			c.SetRequest(c.Request().WithContext(ctx))

			config.Logger.Debug("Actor authenticated successfully",
				zap.String("user_id", userID.String()),
				zap.String("workspace_id", workspaceID.String()),
				zap.String("path", path))

			return next(c)
		}
	}
}

// GetActorFromContext extracts the authenticated actor from the request context
func GetActorFromContext(c echo.Context) (*model.Actor, error) {
	actor, ok := c.Request().Context().Value(actorContextKey).(*model.Actor)
	if !ok || actor == nil {
		return nil, fmt.Errorf("no authenticated actor found in context")
	}
	return actor, nil
}
