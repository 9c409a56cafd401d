//go:build !wfa_debug

package wfa

const checks = false
