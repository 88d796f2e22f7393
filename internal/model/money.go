package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in a single currency as reported by the API.
// Value and ValueInBaseUnits describe the same amount; the API owns that
// contract and it is not checked here.
type Money struct {
	CurrencyCode     string `json:"currencyCode"`
	Value            string `json:"value"`             // e.g. "-12.50"
	ValueInBaseUnits int64  `json:"valueInBaseUnits"` // e.g. -1250

	hasBaseUnits bool
}

// UnmarshalJSON records whether valueInBaseUnits was present, since an
// absent value would otherwise decode silently as zero.
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	type money Money
	aux := struct {
		*money
		ValueInBaseUnits *int64 `json:"valueInBaseUnits"`
	}{money: (*money)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ValueInBaseUnits != nil {
		m.ValueInBaseUnits = *aux.ValueInBaseUnits
		m.hasBaseUnits = true
	}
	return nil
}

// IsZero reports whether m is the zero Money, i.e. it was absent from the payload.
func (m Money) IsZero() bool {
	return m == Money{}
}

// Validate checks the required fields of a decoded Money.
func (m Money) Validate() error {
	switch {
	case m.CurrencyCode == "":
		return missing("currencyCode")
	case m.Value == "":
		return missing("value")
	case !m.hasBaseUnits:
		return missing("valueInBaseUnits")
	}
	return nil
}

// Decimal parses Value.
func (m Money) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(m.Value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", m.Value, err)
	}
	return d, nil
}

func (m Money) String() string {
	return m.Value + " " + m.CurrencyCode
}
