// api/llm/client.go
package llm

import (
	"context"
)

// CompletionRequest is a single-shot instruction to the completion provider.
type CompletionRequest struct {
	// System is the fixed instruction template for the operation.
	System string
	// User is the user-supplied text (question, lecture content, submission).
	User string
	// MaxTokens bounds the output size.
	MaxTokens int
	// Temperature controls sampling; structured operations use a lower one.
	Temperature float32
	// JSONResponse asks the provider for a JSON object response.
	JSONResponse bool
}

// Completer is the completion provider boundary. Implementations make one
// attempt; retries are the caller's concern.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
