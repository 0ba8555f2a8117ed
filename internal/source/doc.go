// Package source provides image sources for the photo table: a directory
// walker, a round-robin multiplexer and a synthetic pattern generator.
//
// Every source reports results through phototable.DecodeOptions: on success
// OutWidth and OutHeight hold the size of the returned image, on failure they
// stay zero and the image is nil.
package source
