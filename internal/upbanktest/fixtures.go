package upbanktest

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Account describes a fixture account.
type Account struct {
	ID          string
	DisplayName string
	AccountType string // SAVER or TRANSACTIONAL
	Balance     string // decimal, e.g. "120.50"
	CreatedAt   time.Time
}

// Transaction describes a fixture transaction.
type Transaction struct {
	ID          string
	AccountID   string
	Description string
	Status      string // HELD or SETTLED
	Amount      string
	CreatedAt   time.Time
	SettledAt   *time.Time
}

// JSON renders the account the way the API does.
func (a Account) JSON() json.RawMessage {
	accountType := a.AccountType
	if accountType == "" {
		accountType = "TRANSACTIONAL"
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC)
	}
	return mustMarshal(map[string]interface{}{
		"type": "accounts",
		"id":   a.ID,
		"attributes": map[string]interface{}{
			"displayName":   a.DisplayName,
			"accountType":   accountType,
			"ownershipType": "INDIVIDUAL",
			"balance":       money(a.Balance),
			"createdAt":     createdAt.Format(time.RFC3339),
		},
		"relationships": map[string]interface{}{
			"transactions": map[string]interface{}{
				"links": map[string]string{
					"related": "https://api.example.test/api/v1/accounts/" + a.ID + "/transactions",
				},
			},
		},
		"links": map[string]string{
			"self": "https://api.example.test/api/v1/accounts/" + a.ID,
		},
	})
}

// JSON renders the transaction the way the API does, with all optional
// sub-objects null.
func (t Transaction) JSON() json.RawMessage {
	status := t.Status
	if status == "" {
		status = "SETTLED"
	}
	var settledAt interface{}
	if t.SettledAt != nil {
		settledAt = t.SettledAt.Format(time.RFC3339)
	}
	return mustMarshal(map[string]interface{}{
		"type": "transactions",
		"id":   t.ID,
		"attributes": map[string]interface{}{
			"status":          status,
			"rawText":         nil,
			"description":     t.Description,
			"message":         nil,
			"isCategorizable": true,
			"holdInfo":        nil,
			"roundUp":         nil,
			"cashback":        nil,
			"amount":          money(t.Amount),
			"foreignAmount":   nil,
			"settledAt":       settledAt,
			"createdAt":       t.CreatedAt.Format(time.RFC3339),
		},
		"relationships": map[string]interface{}{
			"account": map[string]interface{}{
				"data": map[string]string{"type": "accounts", "id": t.AccountID},
			},
			"transferAccount": map[string]interface{}{"data": nil},
			"category":        map[string]interface{}{"data": nil},
			"parentCategory":  map[string]interface{}{"data": nil},
			"tags":            map[string]interface{}{"data": []interface{}{}},
		},
	})
}

// Accounts renders a page of accounts.
func Accounts(accts ...Account) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(accts))
	for _, a := range accts {
		out = append(out, a.JSON())
	}
	return out
}

// Transactions renders a page of transactions.
func Transactions(txns ...Transaction) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(txns))
	for _, t := range txns {
		out = append(out, t.JSON())
	}
	return out
}

func money(value string) map[string]interface{} {
	d := decimal.RequireFromString(value)
	return map[string]interface{}{
		"currencyCode":     "AUD",
		"value":            d.StringFixed(2),
		"valueInBaseUnits": d.Shift(2).IntPart(),
	}
}

func mustMarshal(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
