//go:build invariants
// +build invariants

package jsonskip

const invariantsEnabled = true
