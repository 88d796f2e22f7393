package model

// SelfLinks points at the canonical URL of a resource.
type SelfLinks struct {
	Self string `json:"self"`
}

func (l SelfLinks) Validate() error {
	if l.Self == "" {
		return missing("self")
	}
	return nil
}

// RelatedLinks points at a related resource or collection.
type RelatedLinks struct {
	Related string `json:"related"`
}

func (l RelatedLinks) Validate() error {
	if l.Related == "" {
		return missing("related")
	}
	return nil
}

// SelfRelatedLinks carries a relationship's own URL and, optionally, the
// related resource's URL.
type SelfRelatedLinks struct {
	Self    string  `json:"self"`
	Related *string `json:"related,omitempty"`
}

func (l SelfRelatedLinks) Validate() error {
	if l.Self == "" {
		return missing("self")
	}
	return nil
}

// ResourceRef identifies another resource by type and id without loading it.
type ResourceRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func (r ResourceRef) Validate() error {
	if r.Type == "" {
		return missing("type")
	}
	if r.ID == "" {
		return missing("id")
	}
	return nil
}

// validateOptional validates v only when it is present.
func validateOptional[T interface{ Validate() error }](field string, v *T) error {
	if v == nil {
		return nil
	}
	return within(field, (*v).Validate())
}
