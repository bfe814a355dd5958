// Package session implements the interactive state machine that sequences
// article selection, filename derivation, clipboard hand-off, the one-shot
// capture wait and metadata tagging. The collaborators are ports so the whole
// loop runs against fakes in tests.
package session
