// Package clipboard wraps the system clipboard behind the one-method
// contract the session needs, plus an in-memory fake for tests.
package clipboard
