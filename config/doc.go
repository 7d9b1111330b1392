// Package config loads client configuration from a YAML file, a .env file
// and environment variables.
//
// Every field with a mapstructure tag can be set from the environment using
// the prefix and the underscore-joined key path:
//
//	endpoint             -> ARANGODB_ENDPOINT
//	retry.max_attempts   -> ARANGODB_RETRY_MAX_ATTEMPTS
//
// Environment variables win over the .env file, which wins over YAML.
//
//	var cfg arangodb.Config
//	err := config.Load("arangodb", &cfg)
package config
