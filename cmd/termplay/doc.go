// Command termplay downloads a video and plays it back as text frames in the
// terminal.
//
// Usage:
//
//	termplay ytdl VIDEO --format FORMAT [--width N] [--height N] [--ratio N]
//	    [--keep-size] [--rate N] [--converter NAME]
//	termplay doctor
//	termplay clean [--max-age DURATION]
//	termplay config init|validate
//
// The exit status is 0 on success, the download tool's own status when it
// fails, 130 after an interrupt and 1 for any other failure.
package main
