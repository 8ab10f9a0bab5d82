// Package llm abstracts the text-generation collaborator used by the
// outline builder and section writer.
package llm

import "context"

// Generator produces text from a prompt. Implementations are expected to
// be safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
