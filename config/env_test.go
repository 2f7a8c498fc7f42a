package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEnvName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "section and key", input: "DEXI_APP_dexi_account", want: "dexi.account", wantOK: true},
		{name: "key with underscores", input: "DEXI_APP_google_client_id", want: "google.client_id", wantOK: true},
		{name: "case preserved", input: "DEXI_APP_DEXI_BaseUrl", want: "DEXI.BaseUrl", wantOK: true},
		{name: "empty section", input: "DEXI_APP__key", want: ".key", wantOK: true},
		{name: "no underscore after prefix", input: "DEXI_APP_dexi", wantOK: false},
		{name: "credentials pointer", input: "DEXI_APP_CREDENTIALS", wantOK: false},
		{name: "credentials-like name", input: "DEXI_APP_CREDENTIALS_extra", want: "CREDENTIALS.extra", wantOK: true},
		{name: "other prefix", input: "DEXI_dexi_account", wantOK: false},
		{name: "lower-case prefix", input: "dexi_app_dexi_account", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeEnvName(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeEnvName(t *testing.T) {
	tests := []struct {
		section   string
		key       string
		want      string
		roundTrip bool
	}{
		{section: "google", key: "client_id", want: "DEXI_APP_google_client_id", roundTrip: true},
		{section: "dexi", key: "apiKey", want: "DEXI_APP_dexi_apiKey", roundTrip: true},
		{section: "my_app", key: "key", want: "DEXI_APP_my_app_key"},
		{section: "_x", key: "key", want: "DEXI_APP__x_key"},
	}

	for _, tt := range tests {
		t.Run(tt.section+"."+tt.key, func(t *testing.T) {
			name := EncodeEnvName(tt.section, tt.key)
			assert.Equal(t, tt.want, name)
			assert.Equal(t, tt.roundTrip, EncodableSection(tt.section))

			key, ok := DecodeEnvName(name)
			assert.True(t, ok)
			assert.Equal(t, tt.roundTrip, key == tt.section+"."+tt.key, "decoded %q", key)
		})
	}

	assert.False(t, EncodableSection(""))
}

func TestEnvReader_Read(t *testing.T) {
	reader := &EnvReader{
		Environ: environ(
			"DEXI_APP_dexi_account=env-account",
			"DEXI_APP_CREDENTIALS=/x.yml",
			"DEXI_APP_nounderscore=ignored",
			"DEXI_APP_google_client_id=abc",
			"DEXI_APP_dexi_apiKey=a=b=c",
			"PATH=/usr/bin",
			"=C:=C:\\",
		),
		Properties: map[string]string{
			"DEXI_APP_dexi_account": "prop-account",
			"DEXI_APP_s3_bucket":    "bucket",
			"unrelated":             "x",
		},
	}

	assert.Equal(t, FlatMap{
		"dexi.account":     "prop-account",
		"dexi.apiKey":      "a=b=c",
		"google.client_id": "abc",
		"s3.bucket":        "bucket",
	}, reader.Read())

	env, props := reader.Partition()
	assert.Equal(t, FlatMap{"dexi.apiKey": "a=b=c", "google.client_id": "abc"}, env)
	assert.Equal(t, FlatMap{"dexi.account": "prop-account", "s3.bucket": "bucket"}, props)
}

func TestEnvReader_Lookup(t *testing.T) {
	reader := &EnvReader{
		Environ:    environ("DEXI_APP_CREDENTIALS=/env.yml", "ONLY_ENV=1"),
		Properties: map[string]string{"DEXI_APP_CREDENTIALS": "/prop.yml"},
	}

	got, ok := reader.Lookup(EnvCredentials)
	assert.True(t, ok)
	assert.Equal(t, "/prop.yml", got)

	got, ok = reader.Lookup("ONLY_ENV")
	assert.True(t, ok)
	assert.Equal(t, "1", got)

	_, ok = reader.Lookup("MISSING")
	assert.False(t, ok)
}

func TestEnvReader_ProcessEnvironment(t *testing.T) {
	t.Setenv("DEXI_APP_testsection_testkey", "value")

	got := NewEnvReader(nil).Read()
	assert.Equal(t, "value", got["testsection.testkey"])
}
