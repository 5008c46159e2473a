// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the querydesk packages:
// display-width aware string truncation for the terminal UI and atomic
// file writes for the config file and saved transcripts.
package util
