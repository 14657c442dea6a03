// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/create-hedera-agent/config.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/create-hedera-agent/config.cue on
// macOS, %APPDATA%\create-hedera-agent\config.cue on Windows), falling back to a
// config.cue in the working directory. It covers the template and modules sources,
// the fetch backend, generated file extension, target network, account provisioning
// and UI settings.
//
// Every key can be overridden from the environment with the HEDERA_AGENT_ prefix
// (fetch.backend -> HEDERA_AGENT_FETCH_BACKEND). Operator credentials are also read
// from HEDERA_OPERATOR_ID / HEDERA_OPERATOR_KEY and the legacy MY_ACCOUNT_ID /
// MY_PRIVATE_KEY.
//
// Configuration files are validated against a CUE schema (config_schema.cue) to
// provide clear error messages with field paths.
package config
