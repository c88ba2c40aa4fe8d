package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"salespoint/internal/core/apperror"
	appctx "salespoint/internal/core/context"
	"salespoint/internal/domain/auth"
)

// Auth validates the Bearer token and puts the cashier identity into the
// request context.
func Auth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortWith(c, apperror.NewUnauthorized("missing bearer token"))
			return
		}

		claims, err := issuer.Validate(token)
		if err != nil {
			abortWith(c, err)
			return
		}

		user := &appctx.UserContext{
			UserID:   claims.Subject,
			Username: claims.Username,
			FullName: claims.FullName,
			Roles:    claims.Roles,
		}
		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole gates a route group to users carrying the given role.
// Cancel and refund are manager-only.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !appctx.HasRole(c.Request.Context(), role) {
			abortWith(c, apperror.NewForbidden("role "+role+" required"))
			return
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	body := gin.H{"code": apperror.CodeInternal, "message": "Internal server error"}
	if appErr, ok := apperror.AsAppError(err); ok {
		status = appErr.HTTPStatus
		body = gin.H{"code": appErr.Code, "message": appErr.Message, "details": appErr.Details}
	}
	c.AbortWithStatusJSON(status, body)
}
