// SPDX-License-Identifier: MPL-2.0

// Package fetch retrieves repository snapshots into transient local
// directories: a full shallow clone for the base template and a sparse
// shallow clone, restricted to a set of path prefixes, for the modules
// repository.
//
// Three backends implement Fetcher: go-git (in-process), the git binary
// (blob-filtered partial clone with cone-mode sparse checkout) and local
// directories, which is what "auto" picks for a URL naming an existing folder.
package fetch
