package services

import "context"

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	articleKey   contextKey = "article_no"
)

// WithSessionID annotates context with the session identifier.
func WithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext extracts the session identifier if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(sessionIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithArticle annotates context with the article number currently being
// photographed.
func WithArticle(ctx context.Context, articleNo string) context.Context {
	if articleNo == "" {
		return ctx
	}
	return context.WithValue(ctx, articleKey, articleNo)
}

// ArticleFromContext returns the current article number if present.
func ArticleFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(articleKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}
