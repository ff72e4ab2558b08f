package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"demo-credit/internal/adapter/http/dto"
	"demo-credit/internal/adapter/http/middleware"
	"demo-credit/internal/core/ports"

	"github.com/gin-gonic/gin"
)

func (p *Pages) registerForm(c *gin.Context) {
	data := p.page(c, "Register")
	data["Form"] = dto.RegisterRequest{}
	c.HTML(http.StatusOK, "register.html", data)
}

func (p *Pages) register(c *gin.Context) {
	var form dto.RegisterRequest
	bindErr := c.ShouldBind(&form)
	data := p.page(c, "Register")
	data["Form"] = form
	if bindErr != nil {
		p.fail(c, "register.html", data, bindError(bindErr))
		return
	}
	dto.SanitizeStruct(&form)

	user, err := p.authSvc.Register(c.Request.Context(), ports.RegisterRequest{
		Username:  form.Username,
		Email:     form.Email,
		Password:  form.Password,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		p.fail(c, "register.html", data, err)
		return
	}

	c.Set(middleware.CtxAuditResourceID, strconv.FormatInt(user.ID, 10))
	redirect(c, loginPath, fmt.Sprintf("Welcome %s, you have successfully created a new account. Sign in to continue.", user.FirstName))
}

func (p *Pages) loginForm(c *gin.Context) {
	data := p.page(c, "Log in")
	data["Form"] = dto.LoginRequest{}
	data["Next"] = safeNext(c.Query("next"))
	c.HTML(http.StatusOK, "login.html", data)
}

func (p *Pages) login(c *gin.Context) {
	var form dto.LoginRequest
	bindErr := c.ShouldBind(&form)
	next := safeNext(c.PostForm("next"))
	data := p.page(c, "Log in")
	data["Form"] = dto.LoginRequest{Username: form.Username}
	data["Next"] = next
	if bindErr != nil {
		p.fail(c, "login.html", data, bindError(bindErr))
		return
	}
	dto.SanitizeStruct(&form)

	token, expiry, err := p.authSvc.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		p.fail(c, "login.html", data, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(p.cookieName, token, int(time.Until(expiry).Seconds()), "/", "", p.secure, true)
	c.Set(middleware.CtxAuditResourceID, form.Username)
	redirect(c, next, "")
}

func (p *Pages) logout(c *gin.Context) {
	if err := p.authSvc.Logout(c.Request.Context(), c.GetString(middleware.CtxToken)); err != nil {
		// The cookie is dropped either way; the token just stays valid until expiry.
		p.log.Warn().Err(err).Msg("failed to revoke session token")
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(p.cookieName, "", -1, "/", "", p.secure, true)
	c.Set(middleware.CtxAuditResourceID, c.GetString(middleware.CtxTokenID))
	redirect(c, loginPath, "You have been logged out.")
}

// safeNext only allows redirects to local paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
