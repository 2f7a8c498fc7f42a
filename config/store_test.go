package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Accessors(t *testing.T) {
	store := NewStore()

	assert.Equal(t, DefaultBaseURL, store.BaseURL())
	assert.Empty(t, store.Account())
	assert.Empty(t, store.APIKey())

	MergeOverwrite{}.Merge(store, FlatMap{
		KeyBaseURL: "http://localhost:3000/api/",
		KeyAccount: "acc",
		KeyAPIKey:  "secret",
		"baseUrl":  "bare-key-is-not-read",
	}, SourceFile)

	assert.Equal(t, "http://localhost:3000/api/", store.BaseURL())
	assert.Equal(t, "acc", store.Account())
	assert.Equal(t, "secret", store.APIKey())
	assert.Equal(t, Credentials{BaseURL: "http://localhost:3000/api/", Account: "acc", APIKey: "secret"}, store.Credentials())
}

func TestStore_KeysAllReset(t *testing.T) {
	store := NewStore()
	MergeOverwrite{}.Merge(store, FlatMap{"b.y": "2", "a.x": "1"}, SourceEnv)

	assert.Equal(t, []string{"a.x", "b.y"}, store.Keys())
	assert.Equal(t, 2, store.Len())

	all := store.All()
	all["c.z"] = "mutated"
	assert.Equal(t, 2, store.Len(), "All must return a copy")

	value, src := store.GetWithSource("a.x")
	assert.Equal(t, "1", value)
	assert.Equal(t, SourceEnv, src)

	store.Reset()
	assert.Zero(t, store.Len())
	assert.Empty(t, store.Source("a.x"))
	_, ok := store.Lookup("a.x")
	assert.False(t, ok)
}

func TestMergeFirstWins(t *testing.T) {
	store := NewStore()

	written := MergeFirstWins{}.Merge(store, FlatMap{"dexi.account": "first", "dexi.apiKey": "k"}, SourceRemote)
	assert.Equal(t, 2, written)

	written = MergeFirstWins{}.Merge(store, FlatMap{"dexi.account": "second", "dexi.baseUrl": "u"}, SourceFile)
	assert.Equal(t, 1, written)

	assert.Equal(t, "first", store.Get("dexi.account"))
	assert.Equal(t, SourceRemote, store.Source("dexi.account"))
	assert.Equal(t, SourceFile, store.Source("dexi.baseUrl"))
	assert.Equal(t, 3, store.Len())
}

func TestMergeOverwrite(t *testing.T) {
	store := NewStore()
	MergeFirstWins{}.Merge(store, FlatMap{"dexi.account": "file"}, SourceFile)

	written := MergeOverwrite{}.Merge(store, FlatMap{"dexi.account": "env"}, SourceEnv)
	assert.Equal(t, 1, written)
	assert.Equal(t, "env", store.Get("dexi.account"))
	assert.Equal(t, SourceEnv, store.Source("dexi.account"))
	assert.Equal(t, 1, store.Len())
}

func TestMergeStrategyNames(t *testing.T) {
	assert.Equal(t, "first-wins", MergeFirstWins{}.Name())
	assert.Equal(t, "overwrite", MergeOverwrite{}.Name())
}

func TestCredentials_Validate(t *testing.T) {
	valid := Credentials{BaseURL: "http://localhost:3000/api/", Account: "a", APIKey: "k"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		creds Credentials
		field string
	}{
		{name: "missing account", creds: Credentials{BaseURL: DefaultBaseURL, APIKey: "k"}, field: "account"},
		{name: "missing api key", creds: Credentials{BaseURL: DefaultBaseURL, Account: "a"}, field: "apiKey"},
		{name: "missing base url", creds: Credentials{Account: "a", APIKey: "k"}, field: "baseUrl"},
		{name: "invalid base url", creds: Credentials{BaseURL: "not a url", Account: "a", APIKey: "k"}, field: "baseUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestCredentials_StringHidesAPIKey(t *testing.T) {
	s := Credentials{BaseURL: DefaultBaseURL, Account: "a", APIKey: "super-secret"}.String()
	assert.False(t, strings.Contains(s, "super-secret"))
	assert.Contains(t, s, "<redacted>")
	assert.Contains(t, Credentials{}.String(), "<unset>")
}
