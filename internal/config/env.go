package config

import "github.com/caarlos0/env/v11"

// applyEnvOverrides modifies config in place with the ROOMREPORT_*
// variables declared in the struct tags. Unset variables leave the
// field alone.
func applyEnvOverrides(cfg *Config) error {
	return env.Parse(cfg)
}
