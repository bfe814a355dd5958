// Package watcher bridges an asynchronous filesystem creation event into a
// synchronous workflow step: Arm starts a one-shot, non-recursive watch for
// an exact filename, Wait blocks until that file appears or the context is
// cancelled, and Disarm releases the observer on every exit path.
package watcher
