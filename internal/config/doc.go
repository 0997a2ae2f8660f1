// Package config provides loading and environment overlay for reel runtime
// configuration. It exposes a Default() baseline, a JSON Load, and a
// FromEnv overlay reading REEL_* variables.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/reel.json"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	rt, _ := runtime.Open(runtime.Options{Config: cfg})
//	defer rt.Close()
package config
