package config

import "github.com/caarlos0/env/v11"

// LoadWithEnvForTest resolves path against environ instead of
// the process environment.
func LoadWithEnvForTest(path string, environ map[string]string) (Config, error) {
	return load(path, env.Options{Environment: environ})
}
