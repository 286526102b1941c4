package llm

import "context"

// Purposes label requests in the request log.
const (
	PurposeExplain = "explain"
	PurposeUnknown = "unknown"
)

type purposeKey struct{}

// WithPurpose attaches a purpose label to ctx for request logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose label on ctx, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return PurposeUnknown
}
