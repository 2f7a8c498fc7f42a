// Package config resolves dexi app configuration from a file and from
// environment overrides.
//
// Configuration is a flat map of "section.key" names to string values. A
// single file is read, then DEXI_APP_ overrides are applied on top:
//  1. Properties set explicitly on the resolver (highest priority)
//  2. DEXI_APP_<section>_<key> environment variables
//  3. The configuration file: the location in DEXI_APP_CREDENTIALS if set,
//     otherwise ~/.dexi/configuration.yml
//  4. Accessor defaults (lowest priority)
//
// # Basic Usage
//
//	store := config.NewStore()
//	resolver := config.NewResolver(store, config.ResolverConfig{})
//	if err := resolver.ResolveEnvironment(ctx); err != nil {
//	    return err
//	}
//	fmt.Println(store.BaseURL())   // "https://api.dexi.io/" unless configured
//	fmt.Println(store.Account())   // value of dexi.account
//
// # Files
//
// The file holds sections of keys:
//
//	dexi:
//	  baseUrl: http://localhost:3000/api/
//	  apiKey: super-secret-key
//	  account: dexi-developer-account
//
// A location starting with http:// or https:// is fetched and parsed as
// YAML. A local location is parsed by extension: .yml, .json, .xml or .ini.
// Register more with Registry.Register. A missing local file contributes
// nothing; an unreachable remote file contributes nothing and is reported
// through Resolver.Warnings.
//
// # Environment Variables
//
// The prefix is stripped and the rest is split at the first underscore,
// without changing case:
//
//	DEXI_APP_dexi_account=other-account   # sets "dexi.account"
//	DEXI_APP_google_client_id=abc         # sets "google.client_id"
//
// Names with no underscore after the prefix are ignored.
//
// # Merge Strategies
//
// File values are merged with MergeFirstWins, so resolving twice without
// Store.Reset keeps the values loaded first. Overrides are merged with
// MergeOverwrite and always win. Each value records its Source.
package config
