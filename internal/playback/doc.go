// Package playback shows extracted text frames in the terminal at the
// requested frame rate.
package playback
