//go:build ringunchecked
// +build ringunchecked

// File: internal/contract/disabled.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package contract

// Enabled selects the checked variant of every contract assertion.
const Enabled = false
