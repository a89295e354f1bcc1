// Package config centralises the dotted-key configuration table (spec §6)
// on top of viper, the way the example InMAP CLI layers all of its run
// parameters over a single global viper instance.
package config

import (
	"strings"
	"sync"

	"github.com/spf13/viper"
)

var (
	once sync.Once
	v    *viper.Viper
)

// keys and their defaults, spec §6's configuration table.
var defaults = map[string]interface{}{
	"gridfire:AdaptiveEngineView:RelativeCullingThreshold": 1e-75,
	"gridfire:solver:QSE:ignition:temperature":             2e8,
	"gridfire:solver:QSE:ignition:density":                 1e6,
	"gridfire:solver:QSE:ignition:tMax":                    1e-7,
	"gridfire:solver:QSE:ignition:dt0":                      1e-15,
	"gridfire:solver:policy:temp_threshold":                 0.05,
	"gridfire:solver:policy:rho_threshold":                  0.10,
	"gridfire:solver:policy:fuel_threshold":                 0.15,
	"gridfire:solver:DirectNetworkSolver:absTol":            1e-8,
	"gridfire:solver:DirectNetworkSolver:relTol":            1e-8,
}

// V returns the process-wide viper instance, seeded with this package's
// defaults on first use. Callers may layer a config file or environment
// variables on top via V().SetConfigFile / V().AutomaticEnv before the
// first Get call that needs them.
func V() *viper.Viper {
	once.Do(func() {
		v = viper.New()
		v.SetEnvKeyReplacer(strings.NewReplacer(":", "_"))
		v.AutomaticEnv()
		for k, val := range defaults {
			v.SetDefault(k, val)
		}
	})
	return v
}

// Float64 resolves a dotted config key as a float64.
func Float64(key string) float64 {
	return V().GetFloat64(key)
}

// Load merges a config file (any format viper supports: yaml, json, toml)
// into the process-wide instance. Missing file is not an error if path is
// empty.
func Load(path string) error {
	if path == "" {
		return nil
	}
	V().SetConfigFile(path)
	return V().MergeInConfig()
}
