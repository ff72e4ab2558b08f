package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"demo-credit/internal/adapter/http/middleware"
	"demo-credit/internal/core/domain"
	"demo-credit/pkg/apperror"
	"demo-credit/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

//go:embed templates/*.html
var templatesFS embed.FS

const flashCookieName = "dc_flash"

var templateFuncs = template.FuncMap{
	"amount": domain.FormatAmount,
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006 15:04")
	},
	"kindLabel": kindLabel,
	"add":       func(a, b int) int { return a + b },
	"sub":       func(a, b int) int { return a - b },
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	return tmpl, nil
}

func kindLabel(k domain.RecordKind) string {
	switch k {
	case domain.RecordKindDeposit:
		return "Deposit"
	case domain.RecordKindWithdrawal:
		return "Withdrawal"
	case domain.RecordKindTransferOut:
		return "Transfer out"
	case domain.RecordKindTransferIn:
		return "Transfer in"
	}
	return string(k)
}

// page returns the data every template expects.
func (p *Pages) page(c *gin.Context, title string) gin.H {
	return gin.H{
		"Title":    title,
		"CSRF":     c.GetString(middleware.CtxCSRFToken),
		"Username": c.GetString(middleware.CtxUsername),
		"Flash":    popFlash(c),
	}
}

// fail re-renders name with the error explained to the user.
func (p *Pages) fail(c *gin.Context, name string, data gin.H, err error) {
	status, messages := describeError(err)
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		p.log.Error().Err(err).Str("page", name).Msg("page request failed")
	}
	data["Errors"] = messages
	c.HTML(status, name, data)
}

// redirect sends the browser to target with an optional one-shot flash message.
func redirect(c *gin.Context, target, flash string) {
	if flash != "" {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(flashCookieName, flash, 60, "/", "", false, true)
	}
	c.Redirect(http.StatusSeeOther, target)
}

func popFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookieName)
	if err != nil || msg == "" {
		return ""
	}
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)
	return msg
}

func hasCode(err error, code string) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// bindError keeps validation failures for per-field messages and turns
// anything else the binder reports into a generic validation error.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return apperror.Validation("The form could not be read, please try again.")
}

func describeError(err error) (int, []string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			messages = append(messages, fieldMessage(fe))
		}
		return http.StatusBadRequest, messages
	}
	status, _, message := response.Classify(err)
	return status, []string{message}
}

var fieldLabels = map[string]string{
	"Username":  "Username",
	"Email":     "Email",
	"Password":  "Password",
	"FirstName": "First name",
	"LastName":  "Last name",
	"Amount":    "Amount",
	"Name":      "Beneficiary name",
	"Bank":      "Bank",
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + ": This field cannot be empty."
	case "required_without":
		return "Enter the beneficiary's full name or email."
	case "email":
		return label + ": Enter a valid email address."
	case "min":
		return fmt.Sprintf("%s: Use at least %s characters.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s: Use at most %s characters.", label, fe.Param())
	case "safe_id":
		return label + ": Use letters, digits and _ - . @ + only."
	case "person_name":
		return fmt.Sprintf("%s: Use 1 to %d letters.", label, domain.MaxNameLength)
	case "decimal_amount":
		return label + ": Enter a valid amount."
	case "bank_code":
		return label + ": Select a bank from the list."
	}
	return label + ": This value is invalid."
}
