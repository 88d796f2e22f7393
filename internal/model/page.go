package model

import "fmt"

// Entity is the set of resource shapes a paginated collection can hold.
// The type set is closed so that every decode names its concrete shape.
type Entity interface {
	Account | Transaction
	Validate() error
}

// Page is one page of a cursor-paginated collection.
type Page[T Entity] struct {
	Data  []T        `json:"data"`
	Links *PageLinks `json:"links"`
}

// PageLinks holds the cursor links of a Page. A nil Next marks the last page.
type PageLinks struct {
	Prev *string `json:"prev"`
	Next *string `json:"next"`
}

// Validate checks the envelope and every entity in it.
func (p Page[T]) Validate() error {
	if p.Data == nil {
		return missing("data")
	}
	if p.Links == nil {
		return missing("links")
	}
	for i, e := range p.Data {
		if err := within(fmt.Sprintf("data[%d]", i), e.Validate()); err != nil {
			return err
		}
	}
	return nil
}

// NextURL returns the link to the following page, if any.
func (p Page[T]) NextURL() (string, bool) {
	if p.Links == nil || p.Links.Next == nil || *p.Links.Next == "" {
		return "", false
	}
	return *p.Links.Next, true
}
