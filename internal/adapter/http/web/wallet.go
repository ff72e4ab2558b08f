package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"demo-credit/internal/adapter/http/dto"
	"demo-credit/internal/adapter/http/middleware"
	"demo-credit/internal/core/domain"
	"demo-credit/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// homeRecords is how many records the home page lists.
const homeRecords = 5

func (p *Pages) home(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	data := p.page(c, "")

	wallet, err := p.walletSvc.GetWallet(c.Request.Context(), userID)
	if err != nil {
		if hasCode(err, "WAL_009") {
			c.HTML(http.StatusOK, "home.html", data)
			return
		}
		p.fail(c, "home.html", data, err)
		return
	}
	data["Wallet"] = wallet

	records, err := p.walletSvc.RecentTransactions(c.Request.Context(), userID, homeRecords)
	if err != nil {
		p.fail(c, "home.html", data, err)
		return
	}
	data["Records"] = records
	c.HTML(http.StatusOK, "home.html", data)
}

func (p *Pages) createDefaultForm(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	data := p.page(c, "Create wallet")

	user, err := p.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		p.fail(c, "create_default.html", data, err)
		return
	}
	data["FullName"] = strings.TrimSpace(user.FirstName + " " + user.LastName)
	c.HTML(http.StatusOK, "create_default.html", data)
}

func (p *Pages) createDefault(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	wallet, err := p.walletSvc.CreateDefaultWallet(c.Request.Context(), userID)
	if err != nil {
		data := p.page(c, "Create wallet")
		if user, perr := p.userSvc.GetProfile(c.Request.Context(), userID); perr == nil {
			data["FullName"] = strings.TrimSpace(user.FirstName + " " + user.LastName)
		}
		p.fail(c, "create_default.html", data, err)
		return
	}

	c.Set(middleware.CtxAuditResourceID, strconv.FormatInt(wallet.ID, 10))
	redirect(c, "/", "Your savings wallet is ready.")
}

func (p *Pages) createCustomForm(c *gin.Context) {
	data := p.page(c, "Create wallet")
	data["Form"] = dto.CreateWalletRequest{}
	c.HTML(http.StatusOK, "create_custom.html", data)
}

func (p *Pages) createCustom(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var form dto.CreateWalletRequest
	bindErr := c.ShouldBind(&form)
	data := p.page(c, "Create wallet")
	data["Form"] = form
	if bindErr != nil {
		p.fail(c, "create_custom.html", data, bindError(bindErr))
		return
	}
	dto.SanitizeStruct(&form)

	wallet, err := p.walletSvc.CreateCustomWallet(c.Request.Context(), userID, form.FirstName, form.LastName)
	if err != nil {
		p.fail(c, "create_custom.html", data, err)
		return
	}

	c.Set(middleware.CtxAuditResourceID, strconv.FormatInt(wallet.ID, 10))
	redirect(c, "/", "Your savings wallet is ready.")
}

// amountPage describes the fund and withdraw forms, which differ only in wording.
type amountPage struct {
	title  string
	action string
	submit string
	apply  func(ctx context.Context, userID int64, amount decimal.Decimal) (*ports.MoneyResult, error)
}

func (p *Pages) fundPage() amountPage {
	return amountPage{title: "Fund your wallet", action: "/wallet/fund", submit: "Fund", apply: p.walletSvc.Deposit}
}

func (p *Pages) withdrawPage() amountPage {
	return amountPage{title: "Withdraw funds", action: "/wallet/withdraw", submit: "Withdraw", apply: p.walletSvc.Withdraw}
}

func (p *Pages) fundForm(c *gin.Context)     { p.showAmountForm(c, p.fundPage()) }
func (p *Pages) fund(c *gin.Context)         { p.submitAmount(c, p.fundPage()) }
func (p *Pages) withdrawForm(c *gin.Context) { p.showAmountForm(c, p.withdrawPage()) }
func (p *Pages) withdraw(c *gin.Context)     { p.submitAmount(c, p.withdrawPage()) }

func (p *Pages) amountData(c *gin.Context, ap amountPage, form dto.AmountRequest) gin.H {
	data := p.page(c, ap.title)
	data["Action"] = ap.action
	data["Submit"] = ap.submit
	data["Form"] = form
	return data
}

func (p *Pages) showAmountForm(c *gin.Context, ap amountPage) {
	c.HTML(http.StatusOK, "amount.html", p.amountData(c, ap, dto.AmountRequest{}))
}

func (p *Pages) submitAmount(c *gin.Context, ap amountPage) {
	userID, _ := middleware.UserID(c)

	var form dto.AmountRequest
	bindErr := c.ShouldBind(&form)
	data := p.amountData(c, ap, form)
	if bindErr != nil {
		p.fail(c, "amount.html", data, bindError(bindErr))
		return
	}
	amount, err := dto.ParseAmount(form.Amount)
	if err != nil {
		p.fail(c, "amount.html", data, err)
		return
	}

	result, err := ap.apply(c.Request.Context(), userID, amount)
	if err != nil {
		p.fail(c, "amount.html", data, err)
		return
	}

	c.Set(middleware.CtxAuditResourceID, strconv.FormatInt(result.Wallet.ID, 10))
	redirect(c, "/", result.Record.Details)
}

func (p *Pages) transferData(c *gin.Context, form dto.TransferRequest) gin.H {
	data := p.page(c, "Transfer funds")
	data["Banks"] = domain.Banks
	data["Form"] = form
	return data
}

func (p *Pages) transferForm(c *gin.Context) {
	c.HTML(http.StatusOK, "transfer.html", p.transferData(c, dto.TransferRequest{}))
}

func (p *Pages) transfer(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var form dto.TransferRequest
	bindErr := c.ShouldBind(&form)
	data := p.transferData(c, form)
	if bindErr != nil {
		p.fail(c, "transfer.html", data, bindError(bindErr))
		return
	}
	dto.SanitizeStruct(&form)
	amount, err := dto.ParseAmount(form.Amount)
	if err != nil {
		p.fail(c, "transfer.html", data, err)
		return
	}

	result, err := p.walletSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		UserID:           userID,
		BeneficiaryEmail: form.Email,
		BeneficiaryName:  form.Name,
		BankCode:         form.Bank,
		Amount:           amount,
	})
	if err != nil {
		p.fail(c, "transfer.html", data, err)
		return
	}

	c.Set(middleware.CtxAuditResourceID, strconv.FormatInt(result.Wallet.ID, 10))
	redirect(c, "/", result.Record.Details)
}

func (p *Pages) transactions(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	data := p.page(c, "Transactions")
	data["List"] = dto.TransactionListResponse{}

	params, err := dto.ListParamsFromQuery(c)
	if err != nil {
		p.fail(c, "transactions.html", data, err)
		return
	}
	records, total, err := p.reportingSvc.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		if hasCode(err, "WAL_009") {
			redirect(c, "/", "")
			return
		}
		p.fail(c, "transactions.html", data, err)
		return
	}

	data["List"] = dto.NewTransactionList(records, total, params)
	c.HTML(http.StatusOK, "transactions.html", data)
}
