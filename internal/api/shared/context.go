package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// ContextKey is the type of request context keys set by the API layer.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// EditorSubjectKey is the key for the subject of a validated editor token
	EditorSubjectKey ContextKey = "editorSubject"

	// TraceIDLength is the number of bytes used to generate the trace ID
	TraceIDLength = 16 // 32 hex characters
)

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SetEditor records the authenticated editor subject.
func SetEditor(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, EditorSubjectKey, subject)
}

// GetEditor returns the authenticated editor subject, if any.
func GetEditor(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(EditorSubjectKey).(string)
	return subject, ok && subject != ""
}

// generateTraceID returns 32 hex characters. If crypto/rand fails it falls
// back to the current time in nanoseconds.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return hex.EncodeToString(b)
}
