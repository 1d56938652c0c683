// Package preflight provides readiness checks for the external executables
// and filesystem paths that termplay depends on.
//
// These checks run in two contexts:
//   - The playback pipeline calls Tools.Check before creating a workspace.
//     The first missing tool aborts the run, since every later stage needs it.
//   - The CLI "termplay doctor" command uses RunAll to display the status of
//     every tool and the workspace root without stopping early.
package preflight
