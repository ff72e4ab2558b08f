package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"demo-credit/internal/core/ports"
	"demo-credit/pkg/apperror"
	"demo-credit/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderRequestID carries the request ID in and out.
	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxTokenID  = "token_id"
	CtxToken    = "token"
)

var requestIDRe = regexp.MustCompile(`^[a-zA-Z0-9\-]{8,64}$`)

// UserID returns the authenticated user's ID set by JWTAuth or SessionAuth.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// RequestID assigns every request an ID, reusing a well-formed inbound X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if !requestIDRe.MatchString(id) {
			id = uuid.New().String()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// authenticate validates a token and rejects revoked ones.
// A blocklist outage is logged and the token is accepted.
func authenticate(ctx context.Context, tokenSvc ports.TokenService, blocklist ports.TokenBlocklist, token string, log zerolog.Logger) (*ports.TokenClaims, error) {
	claims, err := tokenSvc.Validate(token)
	if err != nil {
		return nil, err
	}
	if blocklist == nil {
		return claims, nil
	}
	revoked, err := blocklist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		log.Warn().Err(err).Msg("token blocklist check failed, allowing request")
		return claims, nil
	}
	if revoked {
		return nil, fmt.Errorf("token %s revoked", claims.TokenID)
	}
	return claims, nil
}

func setIdentity(c *gin.Context, claims *ports.TokenClaims, token string) {
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxUsername, claims.Username)
	c.Set(CtxTokenID, claims.TokenID)
	c.Set(CtxToken, token)
}

// JWTAuth creates a middleware that validates bearer tokens for API routes.
func JWTAuth(tokenSvc ports.TokenService, blocklist ports.TokenBlocklist, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		tokenStr := authHeader[7:]
		claims, err := authenticate(c.Request.Context(), tokenSvc, blocklist, tokenStr, log)
		if err != nil {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		setIdentity(c, claims, tokenStr)
		c.Next()
	}
}

// SessionAuth guards server-rendered pages. The token lives in a cookie;
// unauthenticated visitors are redirected to loginPath.
func SessionAuth(tokenSvc ports.TokenService, blocklist ports.TokenBlocklist, cookieName, loginPath string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(cookieName)
		if err == nil && tokenStr != "" {
			claims, err := authenticate(c.Request.Context(), tokenSvc, blocklist, tokenStr, log)
			if err == nil {
				setIdentity(c, claims, tokenStr)
				c.Next()
				return
			}
		}

		target := loginPath
		if c.Request.Method == http.MethodGet {
			target += "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		}
		c.Redirect(http.StatusSeeOther, target)
		c.Abort()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event = event.
			Str("request_id", c.GetString(response.RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP())
		if id, ok := UserID(c); ok {
			event = event.Int64("user_id", id)
		}
		if len(c.Errors) > 0 {
			event = event.Str("error", strings.TrimSpace(c.Errors.String()))
		}
		event.Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Str("request_id", c.GetString(response.RequestIDKey)).
					Str("path", c.Request.URL.Path).
					Msg("panic recovered")
				response.Error(c, apperror.InternalError(fmt.Errorf("panic: %v", r)))
				c.Abort()
			}
		}()
		c.Next()
	}
}
