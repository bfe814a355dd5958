// Package services holds cross-cutting helpers shared by the session
// components: sentinel errors with a uniform wrapping scheme for
// fatal-vs-recoverable classification, and context annotations that tag log
// lines with the active session and article.
package services
