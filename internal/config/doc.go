// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for querydesk.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServiceConfig: Where the query service lives and how long to wait for it
//   - UIConfig: Example questions, number locale and display toggles
//   - LogConfig: Log file and level
//   - ServerConfig: Settings for the bundled demo query service
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (--endpoint)
//   - Environment variables (QUERYDESK_*)
//   - ~/.querydesk/config.toml (or --config / QUERYDESK_CONFIG)
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	endpoint := cfg.Service.Endpoint
//	tag := cfg.UI.LocaleTag()
package config
