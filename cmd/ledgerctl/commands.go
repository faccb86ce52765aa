package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/balance_ledger/internal/core/ports/services"
	"github.com/SscSPs/balance_ledger/internal/dto"
)

// app is bound into every command's Run.
type app struct {
	ctx      context.Context
	services *portssvc.ServiceContainer
	out      io.Writer
}

type Commands struct {
	Accounts    AccountsCmd    `cmd:"" help:"List accounts with their current balances."`
	Recalculate RecalculateCmd `cmd:"" help:"Recompute stored balances from the start of each account."`
	Balance     BalanceCmd     `cmd:"" help:"Show an account's balance at a date."`
	Total       TotalCmd       `cmd:"" help:"Show the total balance in the base currency."`
}

type AccountsCmd struct{}

func (cmd *AccountsCmd) Run(a *app) error {
	accounts, err := a.services.Account.ListAccounts(a.ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCURRENCY\tBALANCE")
	for _, acc := range accounts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", acc.AccountID, acc.Name, acc.CurrencyID, acc.CurrentBalance.String())
	}
	return w.Flush()
}

type RecalculateCmd struct {
	Account []string `help:"Account id to recalculate (repeatable)." xor:"target" required:""`
	All     bool     `help:"Recalculate every account." xor:"target" required:""`
}

func (cmd *RecalculateCmd) Run(a *app) error {
	ids := cmd.Account
	if cmd.All {
		accounts, err := a.services.Account.ListAccounts(a.ctx)
		if err != nil {
			return err
		}
		ids = make([]string, len(accounts))
		for i, acc := range accounts {
			ids[i] = acc.AccountID
		}
	}

	for _, id := range ids {
		before, err := a.services.Account.GetAccountByID(a.ctx, id)
		if err != nil {
			return err
		}
		after, err := a.services.Account.RecalculateAccount(a.ctx, id)
		if err != nil {
			return fmt.Errorf("recalculate %s: %w", id, err)
		}
		status := "ok"
		if !before.CurrentBalance.Equal(after.CurrentBalance) {
			status = "fixed (was " + before.CurrentBalance.String() + ")"
		}
		_, _ = fmt.Fprintf(a.out, "%s %s %s\n", id, after.CurrentBalance.String(), status)
	}
	return nil
}

type BalanceCmd struct {
	Account string `arg:"" help:"Account id."`
	Date    string `help:"RFC 3339 instant or YYYY-MM-DD; defaults to now."`
}

func (cmd *BalanceCmd) Run(a *app) error {
	date, err := dto.ParseOptionalDate(cmd.Date)
	if err != nil {
		return err
	}
	balance, err := a.services.Balance.BalanceAsOf(a.ctx, cmd.Account, date)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, balance.String())
	return err
}

type TotalCmd struct {
	Account []string `help:"Account ids to include (repeatable); all accounts when omitted."`
	Date    string   `help:"RFC 3339 instant or YYYY-MM-DD; defaults to now."`
}

func (cmd *TotalCmd) Run(a *app) error {
	date, err := dto.ParseOptionalDate(cmd.Date)
	if err != nil {
		return err
	}
	var total *domain.TotalBalance
	total, err = a.services.Balance.TotalBalance(a.ctx, cmd.Account, date)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "%s %s\n", total.Total.String(), total.CurrencyID)
	return err
}
