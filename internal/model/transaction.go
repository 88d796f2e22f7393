package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Transaction is a movement of money on an Account, as returned by GET /transactions.
type Transaction struct {
	ID            string                   `json:"id"`
	Attributes    TransactionAttributes    `json:"attributes"`
	Relationships TransactionRelationships `json:"relationships"`
	Links         *SelfLinks               `json:"links,omitempty"`
}

// TransactionAttributes holds the descriptive fields of a Transaction.
// Pointer fields are optional and nil when absent or null.
type TransactionAttributes struct {
	Status          TransactionStatus `json:"status"`
	RawText         *string           `json:"rawText,omitempty"`
	Description     string            `json:"description"`
	Message         *string           `json:"message,omitempty"`
	IsCategorizable bool              `json:"isCategorizable"`
	HoldInfo        *HoldInfo         `json:"holdInfo,omitempty"`
	RoundUp         *RoundUp          `json:"roundUp,omitempty"`
	Cashback        *Cashback         `json:"cashback,omitempty"`
	Amount          Money             `json:"amount"`
	ForeignAmount   *Money            `json:"foreignAmount,omitempty"`
	SettledAt       *time.Time        `json:"settledAt,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`

	hasCategorizable bool
}

// UnmarshalJSON records whether isCategorizable was present, since an
// absent flag would otherwise decode silently as false.
func (a *TransactionAttributes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	type attributes TransactionAttributes
	aux := struct {
		*attributes
		IsCategorizable *bool `json:"isCategorizable"`
	}{attributes: (*attributes)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.IsCategorizable != nil {
		a.IsCategorizable = *aux.IsCategorizable
		a.hasCategorizable = true
	}
	return nil
}

// HoldInfo is the amount originally held before settlement.
type HoldInfo struct {
	Amount        Money  `json:"amount"`
	ForeignAmount *Money `json:"foreignAmount,omitempty"`
}

// RoundUp is the spare change moved to a saver for this transaction.
type RoundUp struct {
	Amount       Money  `json:"amount"`
	BoostPortion *Money `json:"boostPortion,omitempty"`
}

// Cashback is a reward credited against this transaction.
type Cashback struct {
	Description string `json:"description"`
	Amount      Money  `json:"amount"`
}

// TransactionRelationships references the resources a Transaction belongs to.
// Only Account is always present.
type TransactionRelationships struct {
	Account         AccountRelationship   `json:"account"`
	TransferAccount *OptionalRelationship `json:"transferAccount,omitempty"`
	Category        *CategoryRelationship `json:"category,omitempty"`
	ParentCategory  *OptionalRelationship `json:"parentCategory,omitempty"`
	Tags            *TagsRelationship     `json:"tags,omitempty"`
}

// AccountRelationship references the owning account.
type AccountRelationship struct {
	Data  ResourceRef   `json:"data"`
	Links *RelatedLinks `json:"links,omitempty"`
}

// OptionalRelationship references a resource that may not apply, in which
// case Data is nil.
type OptionalRelationship struct {
	Data  *ResourceRef  `json:"data"`
	Links *RelatedLinks `json:"links,omitempty"`
}

// CategoryRelationship references the transaction's category, if any.
type CategoryRelationship struct {
	Data  *ResourceRef      `json:"data"`
	Links *SelfRelatedLinks `json:"links,omitempty"`
}

// TagsRelationship lists the tags applied to a transaction.
type TagsRelationship struct {
	Data  []ResourceRef `json:"data"`
	Links *SelfLinks    `json:"links,omitempty"`
}

// AccountID returns the id of the owning account.
func (t Transaction) AccountID() string {
	return t.Relationships.Account.Data.ID
}

// EffectiveAt returns the settlement time, or the creation time for
// transactions that have not settled.
func (t Transaction) EffectiveAt() time.Time {
	if t.Attributes.SettledAt != nil {
		return *t.Attributes.SettledAt
	}
	return t.Attributes.CreatedAt
}

// Validate checks the required fields.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return missing("id")
	}
	if err := within("attributes", t.Attributes.Validate()); err != nil {
		return err
	}
	if err := within("relationships", t.Relationships.Validate()); err != nil {
		return err
	}
	return validateOptional("links", t.Links)
}

// Validate checks the required fields.
func (a TransactionAttributes) Validate() error {
	switch {
	case a.Status == "":
		return missing("status")
	case a.Description == "":
		return missing("description")
	case !a.hasCategorizable:
		return missing("isCategorizable")
	case a.Amount.IsZero():
		return missing("amount")
	case a.CreatedAt.IsZero():
		return missing("createdAt")
	}
	if err := within("amount", a.Amount.Validate()); err != nil {
		return err
	}
	if err := validateOptional("foreignAmount", a.ForeignAmount); err != nil {
		return err
	}
	if err := validateOptional("holdInfo", a.HoldInfo); err != nil {
		return err
	}
	if err := validateOptional("roundUp", a.RoundUp); err != nil {
		return err
	}
	return validateOptional("cashback", a.Cashback)
}

func (h HoldInfo) Validate() error {
	if h.Amount.IsZero() {
		return missing("amount")
	}
	if err := within("amount", h.Amount.Validate()); err != nil {
		return err
	}
	return validateOptional("foreignAmount", h.ForeignAmount)
}

func (r RoundUp) Validate() error {
	if r.Amount.IsZero() {
		return missing("amount")
	}
	if err := within("amount", r.Amount.Validate()); err != nil {
		return err
	}
	return validateOptional("boostPortion", r.BoostPortion)
}

func (c Cashback) Validate() error {
	if c.Description == "" {
		return missing("description")
	}
	if c.Amount.IsZero() {
		return missing("amount")
	}
	return within("amount", c.Amount.Validate())
}

// Validate checks the required fields.
func (r TransactionRelationships) Validate() error {
	if err := within("account", r.Account.Validate()); err != nil {
		return err
	}
	if err := validateOptional("transferAccount", r.TransferAccount); err != nil {
		return err
	}
	if err := validateOptional("category", r.Category); err != nil {
		return err
	}
	if err := validateOptional("parentCategory", r.ParentCategory); err != nil {
		return err
	}
	return validateOptional("tags", r.Tags)
}

func (r AccountRelationship) Validate() error {
	if r.Data == (ResourceRef{}) {
		return missing("data")
	}
	if err := within("data", r.Data.Validate()); err != nil {
		return err
	}
	return validateOptional("links", r.Links)
}

func (r OptionalRelationship) Validate() error {
	if err := validateOptional("data", r.Data); err != nil {
		return err
	}
	return validateOptional("links", r.Links)
}

func (r CategoryRelationship) Validate() error {
	if err := validateOptional("data", r.Data); err != nil {
		return err
	}
	return validateOptional("links", r.Links)
}

func (r TagsRelationship) Validate() error {
	for i, tag := range r.Data {
		if err := within(fmt.Sprintf("data[%d]", i), tag.Validate()); err != nil {
			return err
		}
	}
	return validateOptional("links", r.Links)
}
