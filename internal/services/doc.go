// Package services defines shared utilities consumed by the pipeline stages
// and the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp stage names and the run's correlation
//     identifier for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures with errors.Is.
//   - ExitError and ExitCode, which carry an external tool's exit status (or
//     the cancellation status) unchanged to the process boundary.
package services
