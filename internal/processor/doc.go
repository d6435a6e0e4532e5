// Package processor drives the word pipeline: definition, image, slide,
// rasterization, narration, audio mix and video composition per word, with
// periodic batch combination of the produced clips.
package processor
