package services_test

import (
	"testing"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	"github.com/stretchr/testify/suite"
)

type OperationServiceTestSuite struct {
	ledgerSuite
	main  domain.Account
	other domain.Account
}

func (s *OperationServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.main = s.createAccount("Main", "usd", "0")
	s.other = s.createAccount("Other", "usd", "0")
}

func TestOperationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OperationServiceTestSuite))
}

// seed builds the three-operation history used by most cases:
// +500 @01-09, +100 @01-10, -200 @01-20.
func (s *OperationServiceTestSuite) seed() {
	s.assertDecimal("100", s.addOperation(s.main.AccountID, "100", "2016-01-10").Balance)
	s.assertDecimal("-100", s.addOperation(s.main.AccountID, "-200", "2016-01-20").Balance)
	s.assertDecimal("400", s.addOperation(s.main.AccountID, "500", "2016-01-09").Balance)
}

func (s *OperationServiceTestSuite) TestAddOperation_InsertAtStart() {
	s.seed()

	s.assertDecimal("400", s.currentBalance(s.main.AccountID))
	s.assertBalances([]string{"400", "600", "500"}, s.listAll(nil))
	s.assertConsistent()
}

func (s *OperationServiceTestSuite) TestAddOperation_ReturnsCurrentBalanceNotOwnPosition() {
	s.seed()
	res := s.addOperation(s.main.AccountID, "50", "2016-01-01")

	s.assertDecimal("450", res.Balance, "current balance")
	s.assertDecimal("50", res.Operation.Balance, "own balance")
}

func (s *OperationServiceTestSuite) TestUpdateOperation_Date() {
	s.seed()
	ops := s.listAll(nil)

	res, err := s.svc.Operation.UpdateOperation(s.ctx, ops[2].OperationID, domain.OperationPatch{
		Created: ptr(day("2016-01-15")),
	})
	s.Require().NoError(err)

	s.assertDecimal("600", res.Balance)
	s.assertBalances([]string{"400", "600", "100"}, s.listAll(nil))
	s.assertConsistent()
}

func (s *OperationServiceTestSuite) TestUpdateOperation_AmountThenAccount() {
	s.seed()
	ops := s.listAll(nil)
	_, err := s.svc.Operation.UpdateOperation(s.ctx, ops[2].OperationID, domain.OperationPatch{
		Created: ptr(day("2016-01-15")),
	})
	s.Require().NoError(err)

	ops = s.listAll(nil)
	res, err := s.svc.Operation.UpdateOperation(s.ctx, ops[1].OperationID, domain.OperationPatch{
		Amount: ptr(dec("300")),
	})
	s.Require().NoError(err)
	s.assertDecimal("400", res.Balance, "own positional balance")
	s.assertBalances([]string{"200", "400", "100"}, s.listAll(nil))

	ops = s.listAll(nil)
	res, err = s.svc.Operation.UpdateOperation(s.ctx, ops[1].OperationID, domain.OperationPatch{
		AccountID: ptr(s.other.AccountID),
	})
	s.Require().NoError(err)
	s.assertDecimal("300", res.Balance)
	s.Equal(s.other.AccountID, res.Operation.AccountID)

	s.assertBalances([]string{"-100", "300", "100"}, s.listAll(nil))
	s.assertDecimal("-100", s.currentBalance(s.main.AccountID))
	s.assertDecimal("300", s.currentBalance(s.other.AccountID))
	s.assertConsistent()
}

func (s *OperationServiceTestSuite) TestDeleteOperation_StartEndAndLast() {
	first := s.addOperation(s.main.AccountID, "100", "2016-01-10")
	last := s.addOperation(s.main.AccountID, "-200", "2016-01-20")
	moved := s.addOperation(s.main.AccountID, "300", "2016-01-15")
	_, err := s.svc.Operation.UpdateOperation(s.ctx, moved.Operation.OperationID, domain.OperationPatch{
		AccountID: ptr(s.other.AccountID),
	})
	s.Require().NoError(err)

	res, err := s.svc.Operation.DeleteOperation(s.ctx, first.Operation.OperationID)
	s.Require().NoError(err)
	s.assertDecimal("-200", res.Balance)
	s.assertBalances([]string{"-200", "300"}, s.listAll(nil))

	res, err = s.svc.Operation.DeleteOperation(s.ctx, moved.Operation.OperationID)
	s.Require().NoError(err)
	s.assertDecimal("0", res.Balance)
	s.assertDecimal("-200", s.currentBalance(s.main.AccountID))
	s.assertDecimal("0", s.currentBalance(s.other.AccountID))

	res, err = s.svc.Operation.DeleteOperation(s.ctx, last.Operation.OperationID)
	s.Require().NoError(err)
	s.assertDecimal("0", res.Balance)
	s.Empty(s.listAll(nil))
	s.assertConsistent()
}

func (s *OperationServiceTestSuite) TestInsertShiftAndDeleteShift() {
	s.addOperation(s.main.AccountID, "10", "2020-01-01")
	s.addOperation(s.main.AccountID, "20", "2020-01-03")
	s.addOperation(s.main.AccountID, "30", "2020-01-05")
	before, err := s.store.FindOperationsOrdered(s.ctx, s.main.AccountID)
	s.Require().NoError(err)

	inserted := s.addOperation(s.main.AccountID, "7", "2020-01-04")
	after, err := s.store.FindOperationsOrdered(s.ctx, s.main.AccountID)
	s.Require().NoError(err)
	s.Require().Len(after, 4)
	s.Equal(inserted.Operation.OperationID, after[2].OperationID)
	s.True(after[0].Balance.Equal(before[0].Balance))
	s.True(after[1].Balance.Equal(before[1].Balance))
	s.True(after[3].Balance.Equal(before[2].Balance.Add(dec("7"))))

	_, err = s.svc.Operation.DeleteOperation(s.ctx, inserted.Operation.OperationID)
	s.Require().NoError(err)
	restored, err := s.store.FindOperationsOrdered(s.ctx, s.main.AccountID)
	s.Require().NoError(err)
	s.Require().Len(restored, 3)
	for i := range before {
		s.True(before[i].Balance.Equal(restored[i].Balance), "position %d", i)
	}
}

func (s *OperationServiceTestSuite) TestSameInstantOrdersBySequence() {
	a := s.addOperation(s.main.AccountID, "1", "2021-06-01")
	b := s.addOperation(s.main.AccountID, "2", "2021-06-01")
	c := s.addOperation(s.main.AccountID, "3", "2021-06-01")

	s.Less(a.Operation.SequenceNo, b.Operation.SequenceNo)
	s.Less(b.Operation.SequenceNo, c.Operation.SequenceNo)
	s.assertDecimal("1", a.Operation.Balance)
	s.assertDecimal("3", b.Operation.Balance)
	s.assertDecimal("6", c.Operation.Balance)

	// Rewriting a's date to the same instant keeps its place.
	res, err := s.svc.Operation.UpdateOperation(s.ctx, a.Operation.OperationID, domain.OperationPatch{
		Created: ptr(day("2021-06-01")),
	})
	s.Require().NoError(err)
	s.assertDecimal("1", res.Balance)
}

func (s *OperationServiceTestSuite) TestRounding() {
	s.addTransfer(s.main.AccountID, s.other.AccountID, "300", "300", "2016-05-05")

	res := s.addOperation(s.main.AccountID, "10.023456", "2016-06-05")
	s.assertDecimal("10.02", res.Operation.Amount)
	s.assertDecimal("-289.98", res.Balance)

	// Many fractional updates never drift.
	for i := 0; i < 50; i++ {
		s.addOperation(s.main.AccountID, "0.015", "2016-07-01")
	}
	s.assertDecimal("-288.98", s.currentBalance(s.main.AccountID))
	s.assertConsistent()
}

func (s *OperationServiceTestSuite) TestRounding_ZeroDigitCurrency() {
	yen := s.createAccount("Yen", "jpy", "100.4")
	s.assertDecimal("100", yen.StartBalance)

	res := s.addOperation(yen.AccountID, "0.5", "2020-01-01")
	s.assertDecimal("1", res.Operation.Amount)
	s.assertDecimal("101", res.Balance)
}

func (s *OperationServiceTestSuite) TestAddOperation_Validation() {
	_, err := s.svc.Operation.AddOperation(s.ctx, domain.OperationInput{
		AccountID: "missing", Amount: dec("1"), Created: day("2020-01-01"),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Operation.AddOperation(s.ctx, domain.OperationInput{
		AccountID: s.main.AccountID, Amount: dec("0.001"), Created: day("2020-01-01"),
	})
	s.ErrorIs(err, apperrors.ErrValidation, "rounds to zero")

	_, err = s.svc.Operation.AddOperation(s.ctx, domain.OperationInput{
		AccountID: s.main.AccountID, Amount: dec("1"),
	})
	s.ErrorIs(err, apperrors.ErrValidation, "missing date")

	s.Empty(s.listAll(nil))
}

func (s *OperationServiceTestSuite) TestUpdateOperation_Errors() {
	_, err := s.svc.Operation.UpdateOperation(s.ctx, "missing", domain.OperationPatch{Amount: ptr(dec("1"))})
	s.ErrorIs(err, apperrors.ErrNotFound)

	op := s.addOperation(s.main.AccountID, "5", "2020-01-01")
	_, err = s.svc.Operation.UpdateOperation(s.ctx, op.Operation.OperationID, domain.OperationPatch{})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Operation.UpdateOperation(s.ctx, op.Operation.OperationID, domain.OperationPatch{
		AccountID: ptr("missing"),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	tr := s.addTransfer(s.main.AccountID, s.other.AccountID, "1", "1", "2020-01-02")
	_, err = s.svc.Operation.UpdateOperation(s.ctx, tr.From.OperationID, domain.OperationPatch{Amount: ptr(dec("2"))})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.assertConsistent()
}

func (s *OperationServiceTestSuite) TestDeleteOperation_TransferLegRemovesBoth() {
	tr := s.addTransfer(s.main.AccountID, s.other.AccountID, "40", "40", "2020-01-02")

	res, err := s.svc.Operation.DeleteOperation(s.ctx, tr.To.OperationID)
	s.Require().NoError(err)
	s.assertDecimal("0", res.Balance)

	_, err = s.store.FindOperationByID(s.ctx, tr.From.OperationID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.assertConsistent()
}

func (s *OperationServiceTestSuite) TestListOperations_FilterAndPages() {
	cat := "food"
	for i, d := range []string{"2020-01-01", "2020-01-02", "2020-01-03", "2020-01-04", "2020-01-05"} {
		in := domain.OperationInput{AccountID: s.main.AccountID, Amount: dec("1"), Created: day(d)}
		if i%2 == 0 {
			in.CategoryID = &cat
		}
		_, err := s.svc.Operation.AddOperation(s.ctx, in)
		s.Require().NoError(err)
	}
	s.addOperation(s.other.AccountID, "1", "2020-01-06")

	page, err := s.svc.Operation.ListOperations(s.ctx, domain.OperationFilter{AccountID: &s.main.AccountID, Limit: 2})
	s.Require().NoError(err)
	s.Equal(5, page.Total)
	s.Require().Len(page.Operations, 2)
	s.Require().NotNil(page.Next)
	s.assertBalances([]string{"5", "4"}, page.Operations)

	page, err = s.svc.Operation.ListOperations(s.ctx, domain.OperationFilter{AccountID: &s.main.AccountID, Limit: 2, Before: page.Next})
	s.Require().NoError(err)
	s.assertBalances([]string{"3", "2"}, page.Operations)

	page, err = s.svc.Operation.ListOperations(s.ctx, domain.OperationFilter{AccountID: &s.main.AccountID, Limit: 2, Before: page.Next})
	s.Require().NoError(err)
	s.assertBalances([]string{"1"}, page.Operations)
	s.Nil(page.Next)

	page, err = s.svc.Operation.ListOperations(s.ctx, domain.OperationFilter{CategoryID: &cat})
	s.Require().NoError(err)
	s.Equal(3, page.Total)

	_, err = s.svc.Operation.ListOperations(s.ctx, domain.OperationFilter{AccountID: ptr("missing")})
	s.ErrorIs(err, apperrors.ErrNotFound)
}
