// Package subtitle implements the SRT codec: parsing subtitle files into
// timed segments, serializing segments back to SRT (including the bilingual
// dual layout), and detecting already-bilingual files.
package subtitle
