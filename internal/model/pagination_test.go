package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type pageUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func TestDecodePage(t *testing.T) {
	t.Parallel()

	want := Page[pageUser]{
		Items: []pageUser{
			{ID: "1", Email: "john.doe@example.com"},
			{ID: "2", Email: "jane.smith@example.com"},
		},
		Pagination: Pagination{Page: 1, Limit: 10, Total: 25, TotalPages: 3},
	}

	items := `[{"id":"1","email":"john.doe@example.com"},{"id":"2","email":"jane.smith@example.com"}]`
	pagination := `{"page":1,"limit":10,"total":25,"totalPages":3}`

	cases := map[string]string{
		"resource named array":  `{"users":` + items + `,"pagination":` + pagination + `}`,
		"items array":           `{"items":` + items + `,"pagination":` + pagination + `}`,
		"double nested items":   `{"data":{"items":` + items + `,"pagination":` + pagination + `}}`,
		"nested envelope":       `{"success":true,"data":{"users":` + items + `,"pagination":` + pagination + `}}`,
		"data array at the top": `{"data":` + items + `,"pagination":` + pagination + `}`,
	}

	for name, body := range cases {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			page, err := DecodePage[pageUser](json.RawMessage(body), "users")
			require.NoError(t, err)
			require.Equal(t, want, page)
		})
	}

	t.Run("bare array derives pagination", func(t *testing.T) {
		page, err := DecodePage[pageUser](json.RawMessage(items), "users")
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		require.Equal(t, Pagination{Page: 1, Limit: 2, Total: 2, TotalPages: 1}, page.Pagination)
	})

	t.Run("empty list yields non-nil items", func(t *testing.T) {
		page, err := DecodePage[pageUser](json.RawMessage(`{"items":[],"pagination":{"page":1,"limit":10,"total":0,"totalPages":0}}`), "")
		require.NoError(t, err)
		require.NotNil(t, page.Items)
		require.Empty(t, page.Items)
	})

	t.Run("unrecognized payloads fail", func(t *testing.T) {
		for _, body := range []string{`null`, `{"pagination":{}}`, `"text"`, `{"data":{"data":{"data":{"items":[]}}}}`} {
			_, err := DecodePage[pageUser](json.RawMessage(body), "users")
			require.ErrorIs(t, err, ErrUnrecognizedPage, body)
		}
	})

	t.Run("ambiguous arrays without declared collection fail", func(t *testing.T) {
		_, err := DecodePage[pageUser](json.RawMessage(`{"a":[],"b":[]}`), "")
		require.ErrorIs(t, err, ErrUnrecognizedPage)
	})
}

func TestUserDisplayName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Jane", User{Name: "Jane"}.DisplayName())
	require.Equal(t, "John Doe", User{FirstName: "John", LastName: "Doe"}.DisplayName())
	require.Equal(t, "Doe", User{LastName: "Doe"}.DisplayName())
	require.Equal(t, "a@b.c", User{Email: "a@b.c"}.DisplayName())
}
