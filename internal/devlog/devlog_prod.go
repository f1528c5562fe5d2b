//go:build !dev

// Package devlog forwards developer diagnostics to a local log daemon.
// Release builds compile every call to a no-op; build with -tags dev to enable it.
package devlog

func Debug(string, map[string]any) {}

func Warn(string, map[string]any) {}
