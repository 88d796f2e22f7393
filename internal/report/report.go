// Package report renders accounts and transactions as a plain-text console report.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/upreport/upreport/internal/model"
)

const (
	width       = 80
	dateFormat  = "2006-01-02"
	amountWidth = 10
)

// printer remembers the first write error so callers can check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) header(title string) {
	bar := strings.Repeat("=", width)
	p.printf("%s\n%s\n%s\n", bar, title, bar)
}

func (p *printer) rule() {
	p.printf("%s\n", strings.Repeat("-", width))
}

// Write renders the full report: accounts, then transactions.
func Write(w io.Writer, accts []model.Account, txns []model.Transaction) error {
	if err := WriteAccounts(w, accts); err != nil {
		return err
	}
	return WriteTransactions(w, txns)
}

// WriteAccounts renders accounts in the order given with right-aligned
// balances, followed by a total per currency.
func WriteAccounts(w io.Writer, accts []model.Account) error {
	p := &printer{w: w}
	p.header("ACCOUNTS")
	for _, a := range accts {
		p.printf("$%*s - %s\n", amountWidth, a.Attributes.Balance.Value, a.Attributes.DisplayName)
	}

	totals, err := totalsByCurrency(accts)
	if err != nil {
		return err
	}
	if len(totals) > 0 {
		p.rule()
		for _, t := range totals {
			p.printf("$%*s - TOTAL (%s)\n", amountWidth, t.amount.StringFixed(2), t.currency)
		}
	}
	return p.err
}

// WriteTransactions renders transactions newest first, ordered by
// settlement time or, for unsettled ones, creation time. txns is not modified.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	p := &printer{w: w}
	p.header("TRANSACTIONS")
	for _, t := range SortByEffectiveDesc(txns) {
		p.printf("%s $%*s - %s - %s\n",
			t.EffectiveAt().Format(dateFormat),
			amountWidth, t.Attributes.Amount.Value,
			t.Attributes.Description,
			t.Attributes.Status)
	}
	return p.err
}

// SortByEffectiveDesc returns a copy of txns sorted newest first. Ties keep
// their input order.
func SortByEffectiveDesc(txns []model.Transaction) []model.Transaction {
	sorted := slices.Clone(txns)
	slices.SortStableFunc(sorted, func(a, b model.Transaction) int {
		return b.EffectiveAt().Compare(a.EffectiveAt())
	})
	return sorted
}

type currencyTotal struct {
	currency string
	amount   decimal.Decimal
}

func totalsByCurrency(accts []model.Account) ([]currencyTotal, error) {
	sums := make(map[string]decimal.Decimal)
	for _, a := range accts {
		d, err := a.Attributes.Balance.Decimal()
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", a.ID, err)
		}
		code := a.Attributes.Balance.CurrencyCode
		sums[code] = sums[code].Add(d)
	}

	totals := lo.MapToSlice(sums, func(code string, amount decimal.Decimal) currencyTotal {
		return currencyTotal{currency: code, amount: amount}
	})
	slices.SortFunc(totals, func(a, b currencyTotal) int { return cmp.Compare(a.currency, b.currency) })
	return totals, nil
}
