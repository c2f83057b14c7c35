// Package config defines the rendering configuration shared by parsers
// and the image generator: color palettes, drawable layers, element
// sizes, caption texts and image geometry, plus loading and schema
// validation of render-settings files.
package config
