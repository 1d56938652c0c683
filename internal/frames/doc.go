// Package frames converts a downloaded video into numbered text frames.
//
// Extraction runs in two steps. ffmpeg scales and samples the video into
// PNG images under <workspace>/frames, then the renderer binary turns each
// image into terminal text, several images at a time. The Converter picks
// the renderer's color mode. Frame files are named %06d.txt starting at 1;
// TextPath builds those names for the player.
package frames
