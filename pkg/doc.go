// Package pkg provides shared utilities for the ehciarena packages.
//
// This package contains common functionality used by the descriptor arena,
// the register access layer and the ehci-arena tool, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error values for arena and handoff failures
//   - Component identifiers for log filtering
//
// # Logging
//
// The logging subsystem wraps [log/slog] with arena-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentBinder, "endpoint list bound", "instance", "USB1")
package pkg
