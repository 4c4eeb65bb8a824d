// Package config manages boil's general settings stored at ~/.boil/config.yaml:
// analytics opt-out, the update check and the default framework for new
// projects. Values can be overridden with BOIL_* environment variables.
package config
