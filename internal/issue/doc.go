// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. Issue holds Markdown troubleshooting guides, rendered with
// glamour, for the failures users hit most: existing target directories,
// fetch and authentication errors, configuration errors and provisioning.
package issue
