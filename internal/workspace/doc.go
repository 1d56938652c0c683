// Package workspace owns the per-run scratch directories termplay downloads
// into.
//
// Each workspace is created with os.MkdirTemp under the configured root and
// paired with a sibling "<dir>.lock" file held through gofrs/flock for the
// life of the run. Close removes both exactly once. Sweep reclaims
// directories whose owner died before it could Close.
package workspace
