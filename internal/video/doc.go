// Package video encodes per-word clips (still slide image plus narration
// audio) and concatenates clips into combined batch videos via ffmpeg.
package video
