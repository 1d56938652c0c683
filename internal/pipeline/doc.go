// Package pipeline runs one termplay playback from start to finish.
//
// Stages run strictly in order: tool preflight, workspace creation,
// download, artifact lookup, frame extraction and playback. Before each
// stage the run checks its Cancellation flag, which a signal handler sets;
// a running external tool is always waited for. The workspace is removed
// on every path once it exists, and errors carry the exit status the
// process should report (see services.ExitCode).
package pipeline
