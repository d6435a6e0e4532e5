// Package ffmpeg wraps the ffmpeg and ffprobe command-line tools for audio
// concatenation, still-image video encoding and clip concatenation.
package ffmpeg
