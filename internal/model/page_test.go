package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_NextURL(t *testing.T) {
	var page Page[Account]
	require.NoError(t, json.Unmarshal([]byte(`{"data": [], "links": {"prev": null, "next": "https://api.example.test/accounts?page[after]=abc"}}`), &page))
	require.NoError(t, page.Validate())

	next, ok := page.NextURL()
	assert.True(t, ok)
	assert.Equal(t, "https://api.example.test/accounts?page[after]=abc", next)

	var last Page[Account]
	require.NoError(t, json.Unmarshal([]byte(`{"data": [], "links": {"prev": null, "next": null}}`), &last))
	_, ok = last.NextURL()
	assert.False(t, ok)
}

func TestPage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing data", `{"links": {"next": null}}`, "data: required field missing"},
		{"null data", `{"data": null, "links": {"next": null}}`, "data: required field missing"},
		{"missing links", `{"data": []}`, "links: required field missing"},
		{"bad entity", `{"data": [` + accountJSON + `, {"id": "acct-2"}], "links": {"next": null}}`, "data[1].attributes.displayName: required field missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var page Page[Account]
			require.NoError(t, json.Unmarshal([]byte(tt.body), &page))
			err := page.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPage_WrongShapeFails(t *testing.T) {
	var page Page[Transaction]
	err := json.Unmarshal([]byte(`{"data": [` + accountJSON + `], "links": {"next": null}}`), &page)
	if err == nil {
		err = page.Validate()
	}
	require.Error(t, err)
}
