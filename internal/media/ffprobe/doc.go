// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Inspect runs ffprobe and returns a Result; Dimensions and VideoStream pick
// out the first video stream, which is what frame extraction sizes against.
package ffprobe
