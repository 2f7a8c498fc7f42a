package appsdk

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexiio/app-sdk-go/config"
	"github.com/dexiio/app-sdk-go/testutil"
)

func TestOpen_ResolvesAndBuildsFactory(t *testing.T) {
	api := testutil.NewFakeAPI(t, "acc-1", "key-1")
	api.SetActivationConfig("act-1", `{"region":"eu"}`)

	local := testutil.TempFileString(t, "configuration.yml",
		"dexi:\n  baseUrl: "+api.URL+"\n  account: acc-1\n  apiKey: wrong\n")

	sdk, err := Open(context.Background(), Config{
		Resolver: config.ResolverConfig{
			DefaultLocalPath: local,
			Environ:          func() []string { return []string{"DEXI_APP_dexi_apiKey=key-1"} },
		},
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	assert.Empty(t, sdk.Warnings())

	value, source := sdk.Store().GetWithSource(config.KeyAPIKey)
	assert.Equal(t, "key-1", value)
	assert.Equal(t, config.SourceEnv, source)

	factory, err := sdk.Factory()
	require.NoError(t, err)

	again, err := sdk.Factory()
	require.NoError(t, err)
	assert.Same(t, factory, again)

	var got struct {
		Region string `json:"region"`
	}
	require.NoError(t, factory.ActivationConfig(context.Background(), "act-1", &got))
	assert.Equal(t, "eu", got.Region)
}

func TestOpen_MissingCredentials(t *testing.T) {
	sdk, err := Open(context.Background(), Config{
		Resolver: config.ResolverConfig{
			DefaultLocalPath: filepath.Join(t.TempDir(), "missing.yml"),
			Environ:          func() []string { return nil },
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, sdk.Store().Len())

	_, err = sdk.Factory()
	require.Error(t, err)

	// failures are not remembered
	_, err = sdk.Factory()
	require.Error(t, err)
}

func TestOpen_UnsupportedPointer(t *testing.T) {
	_, err := Open(context.Background(), Config{
		Resolver: config.ResolverConfig{
			Environ: func() []string { return []string{config.EnvCredentials + "=/etc/dexi.toml"} },
		},
	})
	require.Error(t, err)
	assert.True(t, config.IsUnsupportedExtension(err))
}

func TestOpen_DefaultLocalFile(t *testing.T) {
	testutil.ConfigHome(t, "dexi:\n  account: home-account\n  apiKey: home-key\n")

	sdk, err := Open(testutil.TestContext(t, 5*time.Second), Config{
		Resolver: config.ResolverConfig{Environ: func() []string { return nil }},
	})
	require.NoError(t, err)

	value, source := sdk.Store().GetWithSource(config.KeyAccount)
	assert.Equal(t, "home-account", value)
	assert.Equal(t, config.SourceFile, source)
}

func TestOpen_RemotePointer(t *testing.T) {
	srv := testutil.NewConfigServer(t, map[string]string{
		"/configuration.yml": "dexi:\n  account: remote-account\n  apiKey: remote-key\n",
	})
	local := testutil.TempFile(t, "home/configuration.yml", []byte("dexi:\n  account: local-account\n"))

	sdk, err := Open(testutil.TestContext(t, 5*time.Second), Config{
		Resolver: config.ResolverConfig{
			DefaultLocalPath: local,
			Environ: func() []string {
				return []string{config.EnvCredentials + "=" + srv.URL + "/configuration.yml"}
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Hits("/configuration.yml"))

	value, source := sdk.Store().GetWithSource(config.KeyAccount)
	assert.Equal(t, "remote-account", value)
	assert.Equal(t, config.SourceRemote, source)
}

func TestOpen_RemotePointerMissing(t *testing.T) {
	srv := testutil.NewConfigServer(t, nil)

	sdk, err := Open(testutil.TestContext(t, 5*time.Second), Config{
		Resolver: config.ResolverConfig{
			Environ: func() []string {
				return []string{
					config.EnvCredentials + "=" + srv.URL + "/gone.yml",
					"DEXI_APP_dexi_account=env-account",
				}
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Hits("/gone.yml"))
	assert.Len(t, sdk.Warnings(), 1)
	assert.Equal(t, "env-account", sdk.Store().Account())
}
