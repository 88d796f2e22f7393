package model

import "time"

// Account is a bank account as returned by GET /accounts.
type Account struct {
	ID            string               `json:"id"`
	Attributes    AccountAttributes    `json:"attributes"`
	Relationships AccountRelationships `json:"relationships"`
	Links         *SelfLinks           `json:"links,omitempty"`
}

// AccountAttributes holds the descriptive fields of an Account.
type AccountAttributes struct {
	DisplayName   string        `json:"displayName"`
	AccountType   AccountType   `json:"accountType"`
	OwnershipType OwnershipType `json:"ownershipType"`
	Balance       Money         `json:"balance"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// AccountRelationships links an Account to its transactions collection.
type AccountRelationships struct {
	Transactions *RelatedCollection `json:"transactions,omitempty"`
}

// RelatedCollection is a relationship that only carries a link.
type RelatedCollection struct {
	Links RelatedLinks `json:"links"`
}

// Validate checks the required fields.
func (a Account) Validate() error {
	if a.ID == "" {
		return missing("id")
	}
	if err := within("attributes", a.Attributes.Validate()); err != nil {
		return err
	}
	if err := validateOptional("relationships.transactions", a.Relationships.Transactions); err != nil {
		return err
	}
	return validateOptional("links", a.Links)
}

// Validate checks the required fields.
func (a AccountAttributes) Validate() error {
	switch {
	case a.DisplayName == "":
		return missing("displayName")
	case a.AccountType == "":
		return missing("accountType")
	case a.OwnershipType == "":
		return missing("ownershipType")
	case a.Balance.IsZero():
		return missing("balance")
	case a.CreatedAt.IsZero():
		return missing("createdAt")
	}
	return within("balance", a.Balance.Validate())
}

// Validate checks the required fields.
func (r RelatedCollection) Validate() error {
	return within("links", r.Links.Validate())
}
