//go:build !invariants
// +build !invariants

package jsonskip

// invariantsEnabled is true when built with the invariants tag.
const invariantsEnabled = false
