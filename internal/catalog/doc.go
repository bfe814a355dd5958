// Package catalog builds the read-only article lookup table from a tabular
// source file.
//
// Two schemas are supported, recognized by the header sentinel in the second
// column: the article-keyed export (ArtikelNr, rows sharing a key accumulate
// and a has-back marker expands a row into front and back variations) and the
// identity-keyed export (IdentNr, exactly one variation per key, duplicates
// rejected at build time). Rows above the sentinel are skipped silently.
package catalog
