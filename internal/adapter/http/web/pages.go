// Package web serves the server-rendered wallet pages. Visitors authenticate
// with the same JWTs as the API, carried in an HttpOnly session cookie, and
// every form post is CSRF-checked.
package web

import (
	"html/template"
	"time"

	"demo-credit/internal/adapter/http/middleware"
	"demo-credit/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	loginPath = "/accounts/login"
	csrfTTL   = 2 * time.Hour
)

// Deps holds what the pages need.
type Deps struct {
	AuthSvc      ports.AuthService
	UserSvc      ports.UserService
	WalletSvc    ports.WalletService
	ReportingSvc ports.ReportingService
	TokenSvc     ports.TokenService
	Blocklist    ports.TokenBlocklist // nil = revocation not checked
	SigSvc       ports.SignatureService
	CookieName   string
	SecureCookie bool
	Logger       zerolog.Logger
}

// Pages renders the HTML front end.
type Pages struct {
	authSvc      ports.AuthService
	userSvc      ports.UserService
	walletSvc    ports.WalletService
	reportingSvc ports.ReportingService
	tokenSvc     ports.TokenService
	blocklist    ports.TokenBlocklist
	sigSvc       ports.SignatureService
	cookieName   string
	secure       bool
	tmpl         *template.Template
	log          zerolog.Logger
}

// New parses the embedded templates.
func New(deps Deps) (*Pages, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Pages{
		authSvc:      deps.AuthSvc,
		userSvc:      deps.UserSvc,
		walletSvc:    deps.WalletSvc,
		reportingSvc: deps.ReportingSvc,
		tokenSvc:     deps.TokenSvc,
		blocklist:    deps.Blocklist,
		sigSvc:       deps.SigSvc,
		cookieName:   deps.CookieName,
		secure:       deps.SecureCookie,
		tmpl:         tmpl,
		log:          deps.Logger,
	}, nil
}

// Register mounts the pages on r. rl returns the rate limiter for a rule group.
func (p *Pages) Register(r *gin.Engine, rl func(group string) gin.HandlerFunc) {
	r.SetHTMLTemplate(p.tmpl)

	csrf := middleware.CSRF(p.sigSvc, csrfTTL, p.secure)
	session := middleware.SessionAuth(p.tokenSvc, p.blocklist, p.cookieName, loginPath, p.log)

	accounts := r.Group("/accounts", csrf)
	{
		accounts.GET("/register", p.registerForm)
		accounts.POST("/register", rl("auth_register"), p.register)
		accounts.GET("/login", p.loginForm)
		accounts.POST("/login", rl("auth_login"), p.login)
		accounts.POST("/logout", session, p.logout)
	}

	r.GET("/", csrf, session, rl("reads"), p.home)

	wallet := r.Group("/wallet", csrf, session)
	{
		wallet.GET("/create-default", rl("reads"), p.createDefaultForm)
		wallet.POST("/create-default", rl("wallet_write"), p.createDefault)
		wallet.GET("/create-custom", p.createCustomForm)
		wallet.POST("/create-custom", rl("wallet_write"), p.createCustom)
		wallet.GET("/fund", p.fundForm)
		wallet.POST("/fund", rl("wallet_money"), p.fund)
		wallet.GET("/withdraw", p.withdrawForm)
		wallet.POST("/withdraw", rl("wallet_money"), p.withdraw)
		wallet.GET("/transfer", p.transferForm)
		wallet.POST("/transfer", rl("wallet_money"), p.transfer)
		wallet.GET("/transactions", rl("reads"), p.transactions)
	}
}
