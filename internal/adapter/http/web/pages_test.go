package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"demo-credit/internal/adapter/http/middleware"
	"demo-credit/internal/core/domain"
	"demo-credit/internal/core/ports"
	"demo-credit/internal/core/ports/mocks"
	"demo-credit/internal/service"
	"demo-credit/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testUserID  int64 = 7
	sessionName       = "dc_session"
)

var csrfInputRe = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

type pageEnv struct {
	router    *gin.Engine
	tokenSvc  *service.JWTTokenService
	auth      *mocks.MockAuthService
	users     *mocks.MockUserService
	wallets   *mocks.MockWalletService
	reporting *mocks.MockReportingService
}

func newPageEnv(t *testing.T) *pageEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	env := &pageEnv{
		tokenSvc:  service.NewJWTTokenService("pages-test-secret-32-bytes-long!!", time.Hour, "demo-credit"),
		auth:      mocks.NewMockAuthService(ctrl),
		users:     mocks.NewMockUserService(ctrl),
		wallets:   mocks.NewMockWalletService(ctrl),
		reporting: mocks.NewMockReportingService(ctrl),
	}

	pages, err := New(Deps{
		AuthSvc:      env.auth,
		UserSvc:      env.users,
		WalletSvc:    env.wallets,
		ReportingSvc: env.reporting,
		TokenSvc:     env.tokenSvc,
		SigSvc:       service.NewHMACSignatureService("pages-test-csrf"),
		CookieName:   sessionName,
		Logger:       zerolog.Nop(),
	})
	require.NoError(t, err)

	env.router = gin.New()
	pages.Register(env.router, func(string) gin.HandlerFunc { return func(c *gin.Context) { c.Next() } })
	return env
}

func (e *pageEnv) session(t *testing.T) *http.Cookie {
	t.Helper()
	tok, _, err := e.tokenSvc.Generate(testUserID, "ada")
	require.NoError(t, err)
	return &http.Cookie{Name: sessionName, Value: tok}
}

func (e *pageEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *pageEnv) post(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// csrf fetches the login page and returns a valid form token with its cookie.
func (e *pageEnv) csrf(t *testing.T) (string, *http.Cookie) {
	t.Helper()
	w := e.get(loginPath)
	require.Equal(t, http.StatusOK, w.Code)
	m := csrfInputRe.FindStringSubmatch(w.Body.String())
	require.Len(t, m, 2, "no csrf token rendered")
	return m[1], findCookie(w, middleware.CSRFCookieName)
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestHome_RedirectsAnonymous(t *testing.T) {
	env := newPageEnv(t)

	w := env.get("/")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/accounts/login?next=%2F", w.Header().Get("Location"))
}

func TestHome_NoWallet(t *testing.T) {
	env := newPageEnv(t)
	env.wallets.EXPECT().GetWallet(gomock.Any(), testUserID).Return(nil, apperror.ErrNoWallet())

	w := env.get("/", env.session(t))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You do not have a savings wallet yet")
	assert.Contains(t, w.Body.String(), "/wallet/create-default")
}

func TestHome_BalanceAndRecentRecords(t *testing.T) {
	env := newPageEnv(t)
	env.wallets.EXPECT().GetWallet(gomock.Any(), testUserID).Return(&domain.Wallet{
		ID: 11, UserID: testUserID, FirstName: "Ada", LastName: "Obi", Balance: dec("900"),
	}, nil)
	env.wallets.EXPECT().RecentTransactions(gomock.Any(), testUserID, 5).Return([]domain.TransactionRecord{
		{ID: 2, Kind: domain.RecordKindWithdrawal, Amount: dec("-100"), Details: "You withdrew 100.00 naira from your account.", CreatedAt: time.Now()},
		{ID: 1, Kind: domain.RecordKindDeposit, Amount: dec("1000"), Details: "You funded your account with 1000.00 naira.", CreatedAt: time.Now()},
	}, nil)

	w := env.get("/", env.session(t))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "900.00")
	assert.Contains(t, body, "You withdrew 100.00 naira from your account.")
	assert.Contains(t, body, "Withdrawal")
	assert.Less(t, strings.Index(body, "You withdrew"), strings.Index(body, "You funded"))
}

func TestFund_RejectsMissingCSRF(t *testing.T) {
	env := newPageEnv(t)

	w := env.post("/wallet/fund", url.Values{"amount": {"100"}}, env.session(t))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFund_DepositsAndRedirectsHome(t *testing.T) {
	env := newPageEnv(t)
	token, csrfCookie := env.csrf(t)

	env.wallets.EXPECT().Deposit(gomock.Any(), testUserID, dec("250.75")).Return(&ports.MoneyResult{
		Wallet: &domain.Wallet{ID: 11, Balance: dec("250.75")},
		Record: &domain.TransactionRecord{Kind: domain.RecordKindDeposit, Details: "You funded your account with 250.75 naira."},
	}, nil)

	w := env.post("/wallet/fund", url.Values{"amount": {"250.75"}, "csrf_token": {token}}, env.session(t), csrfCookie)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	flash := findCookie(w, flashCookieName)
	require.NotNil(t, flash)
	msg, err := url.QueryUnescape(flash.Value)
	require.NoError(t, err)
	assert.Equal(t, "You funded your account with 250.75 naira.", msg)
}

func TestWithdraw_InsufficientFundsRerenders(t *testing.T) {
	env := newPageEnv(t)
	token, csrfCookie := env.csrf(t)

	env.wallets.EXPECT().Withdraw(gomock.Any(), testUserID, dec("5000")).Return(nil, apperror.ErrInsufficientFunds())

	w := env.post("/wallet/withdraw", url.Values{"amount": {"5000"}, "csrf_token": {token}}, env.session(t), csrfCookie)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "You do not have enough funds in your savings wallet")
	assert.Contains(t, w.Body.String(), `value="5000"`)
}

func TestFund_InvalidAmountShowsFieldError(t *testing.T) {
	env := newPageEnv(t)
	token, csrfCookie := env.csrf(t)

	w := env.post("/wallet/fund", url.Values{"amount": {"lots"}, "csrf_token": {token}}, env.session(t), csrfCookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Amount: Enter a valid amount.")
}

func TestTransfer_FormListsBanks(t *testing.T) {
	env := newPageEnv(t)

	w := env.get("/wallet/transfer", env.session(t))

	require.Equal(t, http.StatusOK, w.Code)
	for _, b := range domain.Banks {
		assert.Contains(t, w.Body.String(), `value="`+b.Code+`"`)
	}
}

func TestTransfer_ByNameWithBank(t *testing.T) {
	env := newPageEnv(t)
	token, csrfCookie := env.csrf(t)

	env.wallets.EXPECT().Transfer(gomock.Any(), ports.TransferRequest{
		UserID:          testUserID,
		BeneficiaryName: "Bola Ade",
		BankCode:        "ZB",
		Amount:          dec("300"),
	}).Return(&ports.TransferResult{
		Wallet:      &domain.Wallet{ID: 11},
		Record:      &domain.TransactionRecord{Details: "You transferred 300.00 naira to Bola Ade (Zenith Bank)."},
		Beneficiary: "Bola Ade",
	}, nil)

	form := url.Values{"name": {"Bola Ade"}, "bank": {"ZB"}, "amount": {"300"}, "csrf_token": {token}}
	w := env.post("/wallet/transfer", form, env.session(t), csrfCookie)

	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestTransfer_UnknownBeneficiary(t *testing.T) {
	env := newPageEnv(t)
	token, csrfCookie := env.csrf(t)

	env.wallets.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrBeneficiaryNotFound("John Doe"))

	form := url.Values{"name": {"John Doe"}, "amount": {"300"}, "csrf_token": {token}}
	w := env.post("/wallet/transfer", form, env.session(t), csrfCookie)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "John Doe")
}

func TestCreateCustom_ValidationError(t *testing.T) {
	env := newPageEnv(t)
	token, csrfCookie := env.csrf(t)

	form := url.Values{"first_name": {"Ada"}, "last_name": {""}, "csrf_token": {token}}
	w := env.post("/wallet/create-custom", form, env.session(t), csrfCookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Last name: This field cannot be empty.")
}

func TestCreateDefault_ShowsProfileName(t *testing.T) {
	env := newPageEnv(t)
	env.users.EXPECT().GetProfile(gomock.Any(), testUserID).Return(&domain.User{ID: testUserID, FirstName: "Ada", LastName: "Obi"}, nil)

	w := env.get("/wallet/create-default", env.session(t))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada Obi")
}

func TestCreateDefault_Creates(t *testing.T) {
	env := newPageEnv(t)
	token, csrfCookie := env.csrf(t)
	env.wallets.EXPECT().CreateDefaultWallet(gomock.Any(), testUserID).Return(&domain.Wallet{ID: 11}, nil)

	w := env.post("/wallet/create-default", url.Values{"csrf_token": {token}}, env.session(t), csrfCookie)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRegister_SuccessFlashesWelcome(t *testing.T) {
	env := newPageEnv(t)
	token, csrfCookie := env.csrf(t)

	env.auth.EXPECT().Register(gomock.Any(), ports.RegisterRequest{
		Username: "ada", Email: "ada@example.com", Password: "password123", FirstName: "Ada", LastName: "Obi",
	}).Return(&domain.User{ID: 3, FirstName: "Ada"}, nil)

	form := url.Values{
		"username": {"ada"}, "email": {"ada@example.com"}, "password": {"password123"},
		"first_name": {"Ada"}, "last_name": {"Obi"}, "csrf_token": {token},
	}
	w := env.post("/accounts/register", form, csrfCookie)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, loginPath, w.Header().Get("Location"))

	next := env.get(loginPath, findCookie(w, flashCookieName))
	assert.Contains(t, next.Body.String(), "Welcome Ada, you have successfully created a new account. Sign in to continue.")
}

func TestRegister_BlacklistedIdentity(t *testing.T) {
	env := newPageEnv(t)
	token, csrfCookie := env.csrf(t)

	env.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrIdentityBlacklisted())

	form := url.Values{
		"username": {"ada"}, "email": {"ada@example.com"}, "password": {"password123"},
		"first_name": {"Ada"}, "last_name": {"Obi"}, "csrf_token": {token},
	}
	w := env.post("/accounts/register", form, csrfCookie)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "You have already been blacklisted")
}

func TestLogin_SetsSessionAndFollowsNext(t *testing.T) {
	env := newPageEnv(t)
	token, csrfCookie := env.csrf(t)

	env.auth.EXPECT().Login(gomock.Any(), "ada", "password123").Return("jwt-token", time.Now().Add(time.Hour), nil)

	form := url.Values{"username": {"ada"}, "password": {"password123"}, "next": {"/wallet/transactions"}, "csrf_token": {token}}
	w := env.post(loginPath, form, csrfCookie)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/wallet/transactions", w.Header().Get("Location"))
	sess := findCookie(w, sessionName)
	require.NotNil(t, sess)
	assert.Equal(t, "jwt-token", sess.Value)
	assert.True(t, sess.HttpOnly)
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newPageEnv(t)
	token, csrfCookie := env.csrf(t)

	env.auth.EXPECT().Login(gomock.Any(), "ada", "nope").Return("", time.Time{}, apperror.ErrInvalidCredentials())

	w := env.post(loginPath, url.Values{"username": {"ada"}, "password": {"nope"}, "csrf_token": {token}}, csrfCookie)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, findCookie(w, sessionName))
}

func TestLogout_ClearsSession(t *testing.T) {
	env := newPageEnv(t)
	token, csrfCookie := env.csrf(t)
	sess := env.session(t)

	env.auth.EXPECT().Logout(gomock.Any(), sess.Value).Return(nil)

	w := env.post("/accounts/logout", url.Values{"csrf_token": {token}}, sess, csrfCookie)

	require.Equal(t, http.StatusSeeOther, w.Code)
	cleared := findCookie(w, sessionName)
	require.NotNil(t, cleared)
	assert.Equal(t, "", cleared.Value)
	assert.True(t, cleared.MaxAge < 0)
}

func TestTransactions_Paginates(t *testing.T) {
	env := newPageEnv(t)
	env.reporting.EXPECT().ListTransactions(gomock.Any(), testUserID, ports.TransactionListParams{Page: 2, PageSize: 1}).
		Return([]domain.TransactionRecord{{ID: 2, Kind: domain.RecordKindDeposit, Amount: dec("5"), Details: "second"}}, int64(3), nil)

	w := env.get("/wallet/transactions?page=2&page_size=1", env.session(t))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Page 2 of 3")
	assert.Contains(t, body, "second")
	assert.Contains(t, body, "page=1")
	assert.Contains(t, body, "page=3")
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/wallet/fund", safeNext("/wallet/fund"))
	assert.Equal(t, "/", safeNext(""))
	assert.Equal(t, "/", safeNext("https://evil.example"))
	assert.Equal(t, "/", safeNext("//evil.example"))
}
