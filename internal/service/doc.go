// SPDX-License-Identifier: MPL-2.0

// Package service defines the catalogue of Hedera service modules that can be
// added to a generated agent project.
//
// A service ID is normalised exactly once (Parse) and every derived name, the
// module directory and the generated factory symbol, comes from the canonical
// form so the copied folders and the generated code always agree.
package service
