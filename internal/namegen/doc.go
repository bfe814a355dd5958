// Package namegen derives the deterministic capture filenames that tie a
// catalog variation to the photo the tethering software writes. Collisions
// with existing files are avoided by an increasing numeric suffix.
package namegen
