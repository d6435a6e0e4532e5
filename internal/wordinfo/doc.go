// Package wordinfo asks an LLM for a kid-friendly definition and example
// sentence of an English word. A response that fails to parse as JSON is
// recorded in a failure log and reported as a failed Result rather than an
// error, so callers can skip the word and keep going.
package wordinfo
