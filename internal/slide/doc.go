// Package slide lays a word, its generated image and its definition and
// example texts out on a single presentation slide, and rasterizes the
// resulting .pptx to a PNG via LibreOffice and pdftoppm.
package slide
