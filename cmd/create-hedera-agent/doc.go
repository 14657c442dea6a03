// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the create-hedera-agent command line interface.
//
// The root command scaffolds a project; "services" lists the selectable
// service modules and "config" shows or initializes the configuration file.
// All collaborators (configuration, fetching, prompting, provisioning and
// dependency installation) are injected through App.
package cmd
