package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"demo-credit/internal/adapter/http/middleware"
	"demo-credit/internal/core/domain"
	"demo-credit/internal/core/ports"
	"demo-credit/internal/core/ports/mocks"
	"demo-credit/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testUserID int64 = 7

func newJSONContext(method, path, body string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func authed(c *gin.Context) {
	c.Set(middleware.CtxUserID, testUserID)
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	code, _ := resp["error_code"].(string)
	return code
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleWallet(balance string) *domain.Wallet {
	return &domain.Wallet{
		ID:        11,
		UserID:    testUserID,
		FirstName: "Ada",
		LastName:  "Obi",
		Balance:   dec(balance),
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// --- Auth Handler Tests ---

func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Register(gomock.Any(), ports.RegisterRequest{
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "password123",
		FirstName: "Ada",
		LastName:  "Obi",
	}).Return(&domain.User{ID: 3, Username: "ada", Email: "ada@example.com", FirstName: "Ada", LastName: "Obi"}, nil)

	w, c := newJSONContext(http.MethodPost, "/api/v1/auth/register",
		`{"username":"ada","email":"ada@example.com","password":"password123","first_name":"Ada","last_name":"Obi"}`)

	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(3), data["id"])
	assert.Equal(t, "ada@example.com", data["email"])
	assert.NotContains(t, w.Body.String(), "password")
	assert.Equal(t, "3", c.GetString(middleware.CtxAuditResourceID))
}

func TestRegister_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	w, c := newJSONContext(http.MethodPost, "/api/v1/auth/register", `{}`)

	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", decodeErrorCode(t, w))
}

func TestRegister_Blacklisted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrIdentityBlacklisted())

	w, c := newJSONContext(http.MethodPost, "/",
		`{"username":"ada","email":"ada@example.com","password":"password123","first_name":"Ada","last_name":"Obi"}`)

	h.Register(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "AUTH_005", decodeErrorCode(t, w))
}

func TestRegister_UsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrUsernameExists())

	w, c := newJSONContext(http.MethodPost, "/",
		`{"username":"taken","email":"t@example.com","password":"password123","first_name":"Ada","last_name":"Obi"}`)

	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(time.Hour)
	mockAuth.EXPECT().Login(gomock.Any(), "ada", "password123").Return("jwt-token", expiry, nil)

	w, c := newJSONContext(http.MethodPost, "/api/v1/auth/login", `{"username":"ada","password":"password123"}`)

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "jwt-token", data["token"])
	assert.Equal(t, float64(expiry.Unix()), data["expiry"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), "ada", "wrong").Return("", time.Time{}, apperror.ErrInvalidCredentials())

	w, c := newJSONContext(http.MethodPost, "/api/v1/auth/login", `{"username":"ada","password":"wrong"}`)

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_001", decodeErrorCode(t, w))
}

func TestLogout_RevokesToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Logout(gomock.Any(), "jwt-token").Return(nil)

	w, c := newJSONContext(http.MethodPost, "/api/v1/auth/logout", ``)
	c.Set(middleware.CtxToken, "jwt-token")
	c.Set(middleware.CtxTokenID, "jti-1")

	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jti-1", c.GetString(middleware.CtxAuditResourceID))
}

func TestLogout_NoToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewAuthHandler(mocks.NewMockAuthService(ctrl))
	w, c := newJSONContext(http.MethodPost, "/api/v1/auth/logout", ``)

	h.Logout(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- User Handler Tests ---

func TestGetMe_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserService(ctrl)
	h := NewUserHandler(mockUsers)

	mockUsers.EXPECT().GetProfile(gomock.Any(), testUserID).
		Return(&domain.User{ID: testUserID, Username: "ada", Email: "ada@example.com"}, nil)

	w, c := newJSONContext(http.MethodGet, "/api/v1/users/me", ``)
	authed(c)

	h.GetMe(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada", decodeData(t, w)["username"])
}

func TestGetMe_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewUserHandler(mocks.NewMockUserService(ctrl))
	w, c := newJSONContext(http.MethodGet, "/api/v1/users/me", ``)

	h.GetMe(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateMe_PassesOnlyProvidedFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserService(ctrl)
	h := NewUserHandler(mockUsers)

	mockUsers.EXPECT().UpdateProfile(gomock.Any(), testUserID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, req ports.UpdateProfileRequest) (*domain.User, error) {
			assert.Nil(t, req.Username)
			require.NotNil(t, req.Email)
			assert.Equal(t, "new@example.com", *req.Email)
			return &domain.User{ID: testUserID, Username: "ada", Email: *req.Email}, nil
		})

	w, c := newJSONContext(http.MethodPatch, "/api/v1/users/me", `{"email":"new@example.com"}`)
	authed(c)

	h.UpdateMe(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new@example.com", decodeData(t, w)["email"])
}

func TestUpdateMe_InvalidEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewUserHandler(mocks.NewMockUserService(ctrl))
	w, c := newJSONContext(http.MethodPatch, "/api/v1/users/me", `{"email":"not-an-email"}`)
	authed(c)

	h.UpdateMe(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Wallet Handler Tests ---

func TestCreateCustom_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallets := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallets, mocks.NewMockReportingService(ctrl))

	mockWallets.EXPECT().CreateCustomWallet(gomock.Any(), testUserID, "Ada", "Obi").Return(sampleWallet("0"), nil)

	w, c := newJSONContext(http.MethodPost, "/api/v1/wallets", `{"first_name":"Ada","last_name":"Obi"}`)
	authed(c)

	h.CreateCustom(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "0.00", data["balance"])
	assert.Equal(t, "11", c.GetString(middleware.CtxAuditResourceID))
}

func TestCreateCustom_NameTooLong(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWalletHandler(mocks.NewMockWalletService(ctrl), mocks.NewMockReportingService(ctrl))
	w, c := newJSONContext(http.MethodPost, "/api/v1/wallets", `{"first_name":"Abcdefghijklmnopqrstu","last_name":"Obi"}`)
	authed(c)

	h.CreateCustom(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateDefault_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallets := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallets, mocks.NewMockReportingService(ctrl))

	mockWallets.EXPECT().CreateDefaultWallet(gomock.Any(), testUserID).Return(nil, apperror.ErrWalletExists())

	w, c := newJSONContext(http.MethodPost, "/api/v1/wallets/default", ``)
	authed(c)

	h.CreateDefault(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "WAL_003", decodeErrorCode(t, w))
}

func TestGetMine_NoWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallets := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallets, mocks.NewMockReportingService(ctrl))

	mockWallets.EXPECT().GetWallet(gomock.Any(), testUserID).Return(nil, apperror.ErrNoWallet())

	w, c := newJSONContext(http.MethodGet, "/api/v1/wallets/me", ``)
	authed(c)

	h.GetMine(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeposit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallets := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallets, mocks.NewMockReportingService(ctrl))

	mockWallets.EXPECT().Deposit(gomock.Any(), testUserID, dec("100.50")).Return(&ports.MoneyResult{
		Wallet: sampleWallet("100.50"),
		Record: &domain.TransactionRecord{
			ID:       1,
			WalletID: 11,
			Kind:     domain.RecordKindDeposit,
			Amount:   dec("100.50"),
			Details:  "You funded your account with 100.50 naira.",
		},
	}, nil)

	w, c := newJSONContext(http.MethodPost, "/api/v1/wallets/me/deposit", `{"amount":"100.50"}`)
	authed(c)

	h.Deposit(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "100.50", data["wallet"].(map[string]interface{})["balance"])
	txn := data["transaction"].(map[string]interface{})
	assert.Equal(t, "DEPOSIT", txn["kind"])
	assert.Equal(t, "You funded your account with 100.50 naira.", txn["details"])
}

func TestDeposit_AcceptsJSONNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallets := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallets, mocks.NewMockReportingService(ctrl))

	mockWallets.EXPECT().Deposit(gomock.Any(), testUserID, dec("25")).Return(&ports.MoneyResult{
		Wallet: sampleWallet("25"),
		Record: &domain.TransactionRecord{Kind: domain.RecordKindDeposit, Amount: dec("25")},
	}, nil)

	w, c := newJSONContext(http.MethodPost, "/api/v1/wallets/me/deposit", `{"amount":25}`)
	authed(c)

	h.Deposit(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeposit_MalformedAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWalletHandler(mocks.NewMockWalletService(ctrl), mocks.NewMockReportingService(ctrl))
	w, c := newJSONContext(http.MethodPost, "/api/v1/wallets/me/deposit", `{"amount":"ten"}`)
	authed(c)

	h.Deposit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallets := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallets, mocks.NewMockReportingService(ctrl))

	mockWallets.EXPECT().Withdraw(gomock.Any(), testUserID, dec("5000")).Return(nil, apperror.ErrInsufficientFunds())

	w, c := newJSONContext(http.MethodPost, "/api/v1/wallets/me/withdraw", `{"amount":"5000"}`)
	authed(c)

	h.Withdraw(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "WAL_001", decodeErrorCode(t, w))
}

func TestTransfer_ByName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallets := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallets, mocks.NewMockReportingService(ctrl))

	mockWallets.EXPECT().Transfer(gomock.Any(), ports.TransferRequest{
		UserID:          testUserID,
		BeneficiaryName: "Bola Ade",
		BankCode:        "GTB",
		Amount:          dec("300"),
	}).Return(&ports.TransferResult{
		Wallet:      sampleWallet("700"),
		Record:      &domain.TransactionRecord{Kind: domain.RecordKindTransferOut, Amount: dec("-300")},
		Beneficiary: "Bola Ade",
	}, nil)

	w, c := newJSONContext(http.MethodPost, "/api/v1/wallets/me/transfer", `{"name":"Bola Ade","bank":"GTB","amount":"300"}`)
	authed(c)

	h.Transfer(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "Bola Ade", data["beneficiary"])
	assert.Equal(t, "-300.00", data["transaction"].(map[string]interface{})["amount"])
}

func TestTransfer_RequiresBeneficiary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWalletHandler(mocks.NewMockWalletService(ctrl), mocks.NewMockReportingService(ctrl))
	w, c := newJSONContext(http.MethodPost, "/api/v1/wallets/me/transfer", `{"amount":"300"}`)
	authed(c)

	h.Transfer(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransfer_UnknownBank(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWalletHandler(mocks.NewMockWalletService(ctrl), mocks.NewMockReportingService(ctrl))
	w, c := newJSONContext(http.MethodPost, "/api/v1/wallets/me/transfer", `{"email":"b@example.com","bank":"XYZ","amount":"300"}`)
	authed(c)

	h.Transfer(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", decodeErrorCode(t, w))
}

func TestStats_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewWalletHandler(mocks.NewMockWalletService(ctrl), mockReporting)

	mockReporting.EXPECT().GetStats(gomock.Any(), testUserID, "month").Return(&ports.TransactionStats{
		TotalTransactions: 3,
		Deposits:          2,
		Withdrawals:       1,
		TotalDeposited:    dec("1500"),
		TotalWithdrawn:    dec("200.5"),
	}, nil)

	w, c := newJSONContext(http.MethodGet, "/api/v1/wallets/me/stats?period=month", ``)
	authed(c)

	h.Stats(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(3), data["total_transactions"])
	assert.Equal(t, "1500.00", data["total_deposited"])
	assert.Equal(t, "200.50", data["total_withdrawn"])
	assert.Equal(t, "0.00", data["total_transferred_in"])
}

// --- Transaction Handler Tests ---

func TestListTransactions_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewTransactionHandler(mockReporting)

	kind := domain.RecordKindDeposit
	mockReporting.EXPECT().ListTransactions(gomock.Any(), testUserID, ports.TransactionListParams{
		Kind:     &kind,
		Page:     2,
		PageSize: 2,
	}).Return([]domain.TransactionRecord{
		{ID: 3, Kind: domain.RecordKindDeposit, Amount: dec("10")},
		{ID: 2, Kind: domain.RecordKindDeposit, Amount: dec("20")},
	}, int64(5), nil)

	w, c := newJSONContext(http.MethodGet, "/api/v1/transactions?page=2&page_size=2&kind=DEPOSIT", ``)
	authed(c)

	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(5), data["total"])
	assert.Equal(t, float64(3), data["total_pages"])
	items := data["items"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, float64(3), items[0].(map[string]interface{})["id"])
}

func TestListTransactions_DefaultsPaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewTransactionHandler(mockReporting)

	mockReporting.EXPECT().ListTransactions(gomock.Any(), testUserID, ports.TransactionListParams{Page: 1, PageSize: 20}).
		Return(nil, int64(0), nil)

	w, c := newJSONContext(http.MethodGet, "/api/v1/transactions?page=-3&page_size=5000", ``)
	authed(c)

	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeData(t, w)["items"])
}

func TestListTransactions_BadKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewTransactionHandler(mocks.NewMockReportingService(ctrl))
	w, c := newJSONContext(http.MethodGet, "/api/v1/transactions?kind=REFUND", ``)
	authed(c)

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTransactions_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewTransactionHandler(mockReporting)

	mockReporting.EXPECT().ListTransactions(gomock.Any(), testUserID, gomock.Any()).Return(nil, int64(0), errors.New("db down"))

	w, c := newJSONContext(http.MethodGet, "/", ``)
	authed(c)

	h.List(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// --- Health Check Test ---

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck()(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pg := mocks.NewMockHealthChecker(ctrl)
	pg.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	pg.EXPECT().Name().Return("postgres").AnyTimes()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(pg)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestSwaggerUI(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/swagger", nil)

	SwaggerUI(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "swagger-ui")
	assert.Contains(t, w.Body.String(), "/swagger/spec")
}

func TestSwaggerSpec_Loaded(t *testing.T) {
	SetSwaggerSpec([]byte("openapi: '3.0.0'\ninfo:\n  title: Test"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/swagger/spec", nil)

	SwaggerSpec(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi")
}

func TestSwaggerSpec_NotLoaded(t *testing.T) {
	SetSwaggerSpec(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/swagger/spec", nil)

	SwaggerSpec(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
