package api

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/features/query/memberprofile"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell/auth"
)

const (
	bearerPrefix     = "Bearer "
	contextKeyMember = "member"
)

// Authenticate resolves the bearer token to the current member profile.
// Invalid tokens and tokens of deactivated or removed members are rejected with 401.
func Authenticate(
	tokens auth.Tokens,
	profiles shell.CoreQueryHandler[memberprofile.Query, memberprofile.MemberProfile],
) gin.HandlerFunc {

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortWithError(c, core.Unauthorized("missing bearer token"))
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			abortWithError(c, core.Unauthorized("invalid token"))
			return
		}

		userID, err := uuid.Parse(claims.Sub)
		if err != nil {
			abortWithError(c, core.Unauthorized("invalid token subject"))
			return
		}

		profile, err := profiles.Handle(c.Request.Context(), memberprofile.BuildQuery(userID))
		switch {
		case errors.Is(err, core.ErrNotFound):
			abortWithError(c, core.Unauthorized("unknown member"))
			return
		case err != nil:
			abortWithError(c, err)
			return
		case !profile.Active:
			abortWithError(c, core.Unauthorized("member account is deactivated"))
			return
		}

		c.Set(contextKeyMember, profile)
		c.Next()
	}
}

// RequireRole rejects members whose current role is none of roles with 403.
func RequireRole(roles ...core.Role) gin.HandlerFunc {
	allowed := map[core.Role]struct{}{}
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
		names = append(names, r.String())
	}

	return func(c *gin.Context) {
		if _, ok := allowed[currentMember(c).Role]; !ok {
			abortWithError(c, core.PermissionDenied("requires role %s", strings.Join(names, " or ")))
			return
		}

		c.Next()
	}
}

func currentMember(c *gin.Context) memberprofile.MemberProfile {
	v, _ := c.Get(contextKeyMember)
	profile, _ := v.(memberprofile.MemberProfile)

	return profile
}

func currentUserID(c *gin.Context) uuid.UUID {
	userID, _ := uuid.Parse(currentMember(c).UserID)

	return userID
}

// RequestLogger logs every request with its status and duration.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		}

		logger.LogAttrs(
			c.Request.Context(),
			level,
			"http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	}
}
