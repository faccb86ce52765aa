package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/balance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/balance_ledger/internal/core/services"
	"github.com/SscSPs/balance_ledger/internal/dto"
	"github.com/SscSPs/balance_ledger/internal/handlers"
	"github.com/SscSPs/balance_ledger/internal/middleware"
	"github.com/SscSPs/balance_ledger/internal/platform/config"
	"github.com/SscSPs/balance_ledger/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// LedgerRoutesTestSuite runs the routes against the real services and an
// in-memory store.
type LedgerRoutesTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *LedgerRoutesTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))

	container, err := services.NewServiceContainer(&config.Config{LockTimeout: time.Second},
		portsrepo.RepositoryProvider{Ledger: memory.NewStore()},
		services.Catalogue{
			Currencies: []domain.Currency{{CurrencyID: "usd", Code: "USD", DecimalDigits: 2}},
			Rates: domain.RateTable{BaseCode: "USD", Rates: map[string]decimal.Decimal{
				"USD": decimal.NewFromInt(1),
			}},
		})
	suite.Require().NoError(err)
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, container)
}

func TestLedgerRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerRoutesTestSuite))
}

func (suite *LedgerRoutesTestSuite) call(method, url string, body any, wantStatus int, out any) {
	suite.T().Helper()
	raw, err := json.Marshal(body)
	suite.Require().NoError(err)
	req := httptest.NewRequest(method, url, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Require().Equal(wantStatus, w.Code, w.Body.String())
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out))
}

func (suite *LedgerRoutesTestSuite) createAccount(name string) string {
	var acc dto.AccountResponse
	suite.call(http.MethodPost, "/api/v1/accounts", gin.H{"name": name, "currency": "usd"}, http.StatusCreated, &acc)
	return acc.AccountID
}

func (suite *LedgerRoutesTestSuite) assertDecimal(expected string, actual decimal.Decimal, what string) {
	suite.T().Helper()
	suite.Truef(decimal.RequireFromString(expected).Equal(actual), "%s: expected %s, got %s", what, expected, actual.String())
}

func (suite *LedgerRoutesTestSuite) TestTransferBalancesInResponse() {
	from := suite.createAccount("Wallet")
	to := suite.createAccount("Card")

	var resp dto.TransferResponse
	suite.call(http.MethodPost, "/api/v1/transfers", gin.H{
		"accountFrom": from, "accountTo": to, "amountFrom": 100, "amountTo": 200, "created": "2016-03-10",
	}, http.StatusCreated, &resp)
	suite.assertDecimal("-100", resp.Balance, "balance")
	suite.assertDecimal("200", resp.Transfer.Balance, "transfer.balance")
	later := resp

	// Inserted before the first transfer: both balances are the accounts' current ones.
	resp = dto.TransferResponse{}
	suite.call(http.MethodPost, "/api/v1/transfers", gin.H{
		"accountFrom": from, "accountTo": to, "amountFrom": 500, "amountTo": 300, "created": "2016-03-05",
	}, http.StatusCreated, &resp)
	suite.assertDecimal("-600", resp.Balance, "balance")
	suite.assertDecimal("500", resp.Transfer.Balance, "transfer.balance")
	suite.assertDecimal("-500", resp.Operation.Amount, "operation.amount")
	suite.assertDecimal("300", resp.Transfer.Amount, "transfer.amount")
	suite.Equal(to, resp.Transfer.AccountID)

	// Update reports each leg's own positional balance.
	resp = dto.TransferResponse{}
	suite.call(http.MethodPut, "/api/v1/transfers/"+later.Operation.OperationID, gin.H{
		"amountFrom": 50,
	}, http.StatusOK, &resp)
	suite.assertDecimal("-550", resp.Balance, "balance")
	suite.assertDecimal("500", resp.Transfer.Balance, "transfer.balance")
}
