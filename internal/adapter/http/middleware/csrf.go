package middleware

import (
	"net/http"
	"time"

	"demo-credit/internal/core/ports"
	"demo-credit/pkg/apperror"
	"demo-credit/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CSRFCookieName holds the random per-browser value tokens are bound to.
	CSRFCookieName = "dc_csrf"
	// CSRFFormField is the hidden form input carrying the token.
	CSRFFormField = "csrf_token"
	// HeaderCSRFToken is accepted in place of the form field.
	HeaderCSRFToken = "X-CSRF-Token"

	// CtxCSRFToken holds a freshly issued token for templates.
	CtxCSRFToken = "csrf_token"
)

// CSRF protects form posts on server-rendered pages with signed double-submit tokens.
func CSRF(sigSvc ports.SignatureService, ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := c.Cookie(CSRFCookieName)
		hasSubject := err == nil && subject != ""

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			token := c.PostForm(CSRFFormField)
			if token == "" {
				token = c.GetHeader(HeaderCSRFToken)
			}
			if !hasSubject || !sigSvc.VerifyCSRFToken(subject, token, ttl) {
				response.Error(c, apperror.ErrCSRF())
				c.Abort()
				return
			}
		}

		if !hasSubject {
			subject = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFCookieName, subject, 0, "/", "", secure, true)
		}
		c.Set(CtxCSRFToken, sigSvc.IssueCSRFToken(subject))
		c.Next()
	}
}
