// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli wires the querydesk commands together with cobra.
//
// # Commands
//
//   - querydesk [chat]: interactive terminal chat (default)
//   - ask: one question, printed and exit
//   - serve: demo query service over built-in data
//   - status: health check against the configured endpoint
//   - config: show, locate or initialize the config file
//   - version: build information
//
// Global flags --config, --endpoint, --verbose and --no-color apply to
// every command. Configuration is loaded once in the root command's
// PersistentPreRunE and handed to subcommands through an app value.
//
// # Usage
//
//	func main() {
//		os.Exit(cli.Execute())
//	}
package cli
