// Command dexi-config resolves dexi app configuration the way the SDK does
// and prints every key with the source it came from.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	appsdk "github.com/dexiio/app-sdk-go"
	"github.com/dexiio/app-sdk-go/config"
	clierrors "github.com/dexiio/app-sdk-go/errors"
	"github.com/dexiio/app-sdk-go/logging"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

const maskedValue = "********"

type options struct {
	credentials string
	local       string
	set         *map[string]string
	output      string
	showSecrets bool
	check       bool
	activation  string
	timeout     time.Duration
	logLevel    string
	logFormat   string
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Environ))
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	app := kingpin.New("dexi-config", "Resolve dexi app configuration and show where each value came from")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	opts := &options{}
	app.Flag("credentials", "Configuration file path or http(s) URL; overrides "+config.EnvCredentials).
		StringVar(&opts.credentials)
	app.Flag("local", "Default local configuration file").
		Default(config.DefaultLocalPath()).StringVar(&opts.local)
	opts.set = app.Flag("set", "Override a value, as section.key=value (repeatable)").StringMap()
	app.Flag("output", "Output format").Short('o').
		Default(outputTable).EnumVar(&opts.output, outputTable, outputJSON, outputYAML)
	app.Flag("show-secrets", "Print secret values instead of masking them").BoolVar(&opts.showSecrets)
	app.Flag("check", "Fail unless dexi credentials are complete").BoolVar(&opts.check)
	app.Flag("activation", "Also fetch the configuration of this activation from the API").
		StringVar(&opts.activation)
	app.Flag("timeout", "Timeout for resolving and API calls").Default("30s").DurationVar(&opts.timeout)
	app.Flag("log-level", "Log level").Default("warn").StringVar(&opts.logLevel)
	app.Flag("log-format", "Log format (json, console)").Default(logging.FormatConsole).StringVar(&opts.logFormat)

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, environ func() []string) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "dexi-config: %v\n", err)
		return 2
	}

	logger, err := logging.New(opts.logLevel, opts.logFormat)
	if err != nil {
		fmt.Fprintf(stderr, "dexi-config: %v\n", err)
		return 2
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := execute(ctx, opts, stdout, stderr, environ, logger); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func execute(ctx context.Context, opts *options, stdout, stderr io.Writer, environ func() []string, logger *zap.Logger) error {
	props, err := propertyOverrides(opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	sdk, err := appsdk.Open(ctx, appsdk.Config{
		Resolver: config.ResolverConfig{
			DefaultLocalPath: opts.local,
			Properties:       props,
			Environ:          environ,
		},
		Logger: logger,
	})
	if err != nil {
		return clierrors.WrapResolveError(err)
	}

	for _, w := range sdk.Warnings() {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}

	if opts.check || opts.activation != "" {
		if err := sdk.Store().Credentials().Validate(); err != nil {
			return clierrors.WrapCredentialsError(err)
		}
	}

	if err := printStore(stdout, sdk.Store(), opts); err != nil {
		return err
	}

	if opts.activation == "" {
		return nil
	}

	factory, err := sdk.Factory()
	if err != nil {
		return clierrors.WrapCredentialsError(err)
	}

	var activation json.RawMessage
	if err := factory.ActivationConfig(ctx, opts.activation, &activation); err != nil {
		return clierrors.WrapAPIError(err, factory.BaseURL())
	}

	fmt.Fprintf(stdout, "\nactivation %s:\n", opts.activation)
	pretty, err := json.MarshalIndent(activation, "", "  ")
	if err != nil {
		return fmt.Errorf("format activation configuration: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(pretty))
	return err
}

// propertyOverrides turns --set and --credentials into resolver properties.
// Keys are either section.key or a full DEXI_APP_ variable name.
func propertyOverrides(opts *options) (map[string]string, error) {
	props := make(map[string]string, len(*opts.set)+1)
	for key, value := range *opts.set {
		if strings.HasPrefix(key, config.EnvPrefix) {
			props[key] = value
			continue
		}
		section, name, ok := strings.Cut(key, ".")
		if !ok || section == "" || name == "" {
			return nil, fmt.Errorf("--set %s: key must look like section.key", key)
		}
		if !config.EncodableSection(section) {
			return nil, fmt.Errorf("--set %s: section %q cannot contain '_'; set %s<section>_<key> directly", key, section, config.EnvPrefix)
		}
		props[config.EncodeEnvName(section, name)] = value
	}
	if opts.credentials != "" {
		props[config.EnvCredentials] = opts.credentials
	}
	return props, nil
}

func printStore(w io.Writer, store *config.Store, opts *options) error {
	values := store.All()
	if !opts.showSecrets {
		for key := range values {
			if isSecretKey(key) {
				values[key] = maskedValue
			}
		}
	}

	switch opts.output {
	case outputJSON:
		data, err := config.MarshalJSON(values)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputYAML:
		data, err := config.MarshalYAML(values)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	for _, key := range store.Keys() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", key, values[key], store.Source(key))
	}
	if _, ok := values[config.KeyBaseURL]; !ok {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", config.KeyBaseURL, config.DefaultBaseURL, "default")
	}
	return tw.Flush()
}

func isSecretKey(key string) bool {
	_, name, _ := strings.Cut(key, ".")
	name = strings.ToLower(name)
	for _, marker := range []string{"apikey", "secret", "password", "token"} {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}
