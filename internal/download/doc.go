// Package download runs the external video download tool inside a run
// workspace.
//
// The tool owns the terminal while it runs, so the client switches to the
// alternate screen buffer around it. Its exit status is carried back in a
// services.ExitError so that the process can exit with the same code.
package download
