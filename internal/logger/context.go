package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Structured field names shared by every component
const (
	FieldComponent = "component"
	FieldKind      = "kind"
	FieldSource    = "source"
	FieldCount     = "count"
	FieldPath      = "path"
	FieldSession   = "session"
)

// ContextKey is the type of the context keys read by WithContext
type ContextKey string

// SessionKey carries the cart session id
const SessionKey ContextKey = "session"

// WithSession returns a context carrying the cart session id
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// WithContext returns an app logger entry enriched with the values found in ctx
func WithContext(ctx context.Context) *logrus.Entry {
	entry := GetAppLogger().WithContext(ctx)
	if session, ok := ctx.Value(SessionKey).(string); ok && session != "" {
		entry = entry.WithField(FieldSession, session)
	}
	return entry
}

// Component returns an app logger entry tagged with the component name
func Component(ctx context.Context, name string) *logrus.Entry {
	return WithContext(ctx).WithField(FieldComponent, name)
}
