// Package audio narrates word, definition and example via text-to-speech
// providers and mixes the three segments into a single track with fixed
// silence gaps between them.
package audio
