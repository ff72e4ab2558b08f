package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"demo-credit/internal/core/domain"
	"demo-credit/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CtxAuditResourceID is set by handlers to the ID of the resource a write produced.
// Redirect responses are only audited when it is present.
const CtxAuditResourceID = "audit_resource_id"

type auditTarget struct {
	action       domain.AuditAction
	resourceType string
}

// auditRoutes maps "METHOD route" to the audited action, for API and page routes alike.
var auditRoutes = map[string]auditTarget{
	"POST /api/v1/auth/register":       {domain.AuditActionRegister, "user"},
	"POST /api/v1/auth/login":          {domain.AuditActionLogin, "session"},
	"POST /api/v1/auth/logout":         {domain.AuditActionLogout, "session"},
	"PATCH /api/v1/users/me":           {domain.AuditActionUpdateProfile, "user"},
	"POST /api/v1/wallets":             {domain.AuditActionCreateWallet, "wallet"},
	"POST /api/v1/wallets/default":     {domain.AuditActionCreateWallet, "wallet"},
	"POST /api/v1/wallets/me/deposit":  {domain.AuditActionDeposit, "wallet"},
	"POST /api/v1/wallets/me/withdraw": {domain.AuditActionWithdraw, "wallet"},
	"POST /api/v1/wallets/me/transfer": {domain.AuditActionTransfer, "wallet"},
	"POST /accounts/register":          {domain.AuditActionRegister, "user"},
	"POST /accounts/login":             {domain.AuditActionLogin, "session"},
	"POST /accounts/logout":            {domain.AuditActionLogout, "session"},
	"POST /wallet/create-default":      {domain.AuditActionCreateWallet, "wallet"},
	"POST /wallet/create-custom":       {domain.AuditActionCreateWallet, "wallet"},
	"POST /wallet/fund":                {domain.AuditActionDeposit, "wallet"},
	"POST /wallet/withdraw":            {domain.AuditActionWithdraw, "wallet"},
	"POST /wallet/transfer":            {domain.AuditActionTransfer, "wallet"},
}

// AuditLog creates an audit middleware that logs successful write operations.
// It maps HTTP methods and routes to audit actions.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < http.StatusOK || status >= http.StatusBadRequest {
			return
		}
		resourceID := c.GetString(CtxAuditResourceID)
		if status >= http.StatusMultipleChoices && resourceID == "" {
			return
		}

		target, ok := mapRouteToAction(c.Request.Method, c.FullPath())
		if !ok {
			return
		}

		var userID *int64
		if id, ok := UserID(c); ok {
			userID = &id
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": status,
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			UserID:       userID,
			Action:       target.action,
			ResourceType: target.resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}

func mapRouteToAction(method, route string) (auditTarget, bool) {
	t, ok := auditRoutes[method+" "+route]
	return t, ok
}
