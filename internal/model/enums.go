package model

import "fmt"

// AccountType classifies a bank account.
type AccountType string

const (
	AccountTypeSaver         AccountType = "SAVER"
	AccountTypeTransactional AccountType = "TRANSACTIONAL"
)

// UnmarshalText rejects values outside the known set.
func (t *AccountType) UnmarshalText(text []byte) error {
	switch v := AccountType(text); v {
	case AccountTypeSaver, AccountTypeTransactional:
		*t = v
		return nil
	default:
		return fmt.Errorf("unknown account type %q", text)
	}
}

// OwnershipType describes who holds an account.
type OwnershipType string

const (
	OwnershipIndividual OwnershipType = "INDIVIDUAL"
	OwnershipJoint      OwnershipType = "JOINT"
)

// UnmarshalText rejects values outside the known set.
func (o *OwnershipType) UnmarshalText(text []byte) error {
	switch v := OwnershipType(text); v {
	case OwnershipIndividual, OwnershipJoint:
		*o = v
		return nil
	default:
		return fmt.Errorf("unknown ownership type %q", text)
	}
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	StatusHeld    TransactionStatus = "HELD"
	StatusSettled TransactionStatus = "SETTLED"
)

// UnmarshalText rejects values outside the known set.
func (s *TransactionStatus) UnmarshalText(text []byte) error {
	switch v := TransactionStatus(text); v {
	case StatusHeld, StatusSettled:
		*s = v
		return nil
	default:
		return fmt.Errorf("unknown transaction status %q", text)
	}
}
