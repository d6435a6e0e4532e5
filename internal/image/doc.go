// Package image illustrates vocabulary words with generated images. Two
// interchangeable backends are provided: the OpenAI image API (returns a URL
// which is downloaded synchronously) and a hosted diffusion model via the
// Gemini Imagen API with fixed sampling parameters and a fixed seed.
package image
