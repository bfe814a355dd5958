// Package tagger writes the IPTC metadata that carries catalog attributes
// onto captured photo files. The implementation shells out to exiftool; the
// Writer interface keeps the session testable without it.
package tagger
