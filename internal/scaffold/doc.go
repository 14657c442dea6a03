// SPDX-License-Identifier: MPL-2.0

// Package scaffold materializes a new agent project on disk.
//
// A run is a fixed sequence of phases, each with its own failure boundary:
//
//	precondition  validate the request; the target must not exist
//	fetch         full clone of the template, sparse clone of the modules
//	create        create the target directory
//	template      copy the template (minus .git) into the target
//	copy          copy each selected module folder that exists upstream
//	generate      write the tools index and the composition entry point
//	customize     rewrite package.json, README.md and the scaffold manifest
//	cleanup       remove the run's transient fetch directory
//	config        provision an account (optional) and write .env files
//
// A precondition failure performs no filesystem writes at all. Both fetches
// complete before the target is created, so network and authentication
// failures never leave a half-built project behind. Failures after the
// create phase are reported as a *PhaseError with Partial set, and the target
// directory is left in place for the user to inspect or remove.
//
// A selected module that is missing upstream is skipped with a warning and
// never referenced by generated code. Provisioning failures and cleanup
// failures are also warnings; the project is still produced.
package scaffold
