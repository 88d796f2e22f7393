package accounts

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/upreport/upreport/internal/model"
)

// Service provides in-memory lookup over the accounts fetched for one run.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewService creates a Service from a slice of accounts, keeping their order.
func NewService(accounts []model.Account) *Service {
	byID := lo.KeyBy(accounts, func(a model.Account) string { return a.ID })
	return &Service{accounts: accounts, byID: byID}
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	return lo.Filter(s.accounts, func(a model.Account, _ int) bool {
		return a.Attributes.AccountType == accountType
	})
}

// Find resolves an account by ID or by case-insensitive display name.
// A name shared by several accounts is an error.
func (s *Service) Find(ref string) (model.Account, error) {
	if a, ok := s.byID[ref]; ok {
		return a, nil
	}
	matches := lo.Filter(s.accounts, func(a model.Account, _ int) bool {
		return strings.EqualFold(a.Attributes.DisplayName, ref)
	})
	switch len(matches) {
	case 0:
		return model.Account{}, fmt.Errorf("no account named %q", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Account{}, fmt.Errorf("%d accounts named %q, use the account id", len(matches), ref)
	}
}
