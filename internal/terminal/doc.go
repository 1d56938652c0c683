// Package terminal holds the escape sequences termplay writes around external
// tools and frame playback, and decides whether to write them at all.
package terminal
