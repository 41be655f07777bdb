// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, metrics, logging and debug introspection layer for
// hioload-ringbuf.
//
// Provides:
//   - Viper-backed configuration with defaults, env overrides and validation
//   - Prometheus collectors for ring buffer activity (ring.Observer)
//   - Zap logger construction from a level string
//   - Probe registration and state export for live diagnostics
package control
