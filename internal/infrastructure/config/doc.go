// Package config handles loading and validating orgstack configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables (ORGSTACK_* prefix)
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - Sensitive values (the JWT signing secret) should be set via
//     environment variables, not committed to config files
//   - The JWT secret is loaded exactly once at startup and injected into
//     the token issuer; it is never logged
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.Port)
package config
