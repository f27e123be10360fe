// Package config loads, parses and validates application settings from
// environment variables, an optional .env file and an optional YAML config
// file, keeping configuration details out of business logic.
package config
