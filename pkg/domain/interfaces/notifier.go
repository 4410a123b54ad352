package interfaces

import "context"

// Notifier delivers synced artifacts and summaries to the fixed destination
// channel. Failures must be reported distinctly so the orchestrator can keep
// the local copy and withhold the version update.
type Notifier interface {
	// SendFile uploads one file. An empty caption defaults to the file
	// basename on the implementation side.
	SendFile(ctx context.Context, path, caption string) error

	// SendMessage posts a plain text message.
	SendMessage(ctx context.Context, text string) error
}
