package extract

import "context"

// Completer produces a chat completion for a system+user prompt pair.
// The live implementation lives in transport/openai; tests use a
// deterministic stub.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
