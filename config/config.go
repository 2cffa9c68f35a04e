// Package config implements Comrade's thin, viper-backed ambient
// configuration surface: the handful of Builder defaults an embedder
// might want to override via environment variables, following the
// teacher's root go.mod dependency on github.com/spf13/viper. Comrade
// itself has no config file of its own — no persistence, no network
// transport (spec.md §1 Non-goals) — so this is deliberately small.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "COMRADE"

// Config holds the environment-overridable defaults a Builder consumes.
type Config struct {
	// Domain is the default path-prefix domain new Contexts start with
	// when a Builder doesn't call WithDomain explicitly.
	Domain string
	// StrictMinimalEncoding reserves a knob for tightening multikey/
	// multisig decode strictness (e.g. rejecting non-canonical
	// signature encodings) without changing the public API surface.
	StrictMinimalEncoding bool
}

// Default returns the built-in defaults with no environment overrides
// applied.
func Default() Config {
	return Config{Domain: "/", StrictMinimalEncoding: false}
}

// Load builds a Config from Default(), then applies COMRADE_DOMAIN and
// COMRADE_STRICT_MINIMAL_ENCODING environment overrides, if set.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("domain", def.Domain)
	v.SetDefault("strict_minimal_encoding", def.StrictMinimalEncoding)

	if err := v.BindEnv("domain"); err != nil {
		return Config{}, err
	}
	if err := v.BindEnv("strict_minimal_encoding"); err != nil {
		return Config{}, err
	}

	return Config{
		Domain:                v.GetString("domain"),
		StrictMinimalEncoding: v.GetBool("strict_minimal_encoding"),
	}, nil
}
