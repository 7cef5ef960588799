package service

import "context"

// CompletionService is the single text-in text-out contract the screening
// wizard needs from a language-model provider.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
