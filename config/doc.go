// Package config resolves the settings shared by the ikh,
// avalanche, chain and ikh-server binaries. Values are layered
// as defaults, then an optional YAML file, then IKH_*
// environment variables (a .env file is loaded first), then
// command-line flags.
package config
