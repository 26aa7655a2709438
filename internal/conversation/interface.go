package conversation

import "context"

// UseCase defines the business logic of one chat conversation per session.
type UseCase interface {
	// Submit normalizes the attachments and stores the user's message as pending.
	Submit(ctx context.Context, sessionID string, input SubmitInput) (SubmitOutput, error)

	// SendTurn streams the model's answer to the pending message and commits both turns.
	SendTurn(ctx context.Context, sessionID string, obs TurnObserver) (TurnOutput, error)

	// Send runs Submit and SendTurn as one request without releasing the session in between.
	Send(ctx context.Context, sessionID string, input SubmitInput, obs TurnObserver) (TurnOutput, error)

	// ContinueTurn asks the model to resume a response that hit the token limit.
	ContinueTurn(ctx context.Context, sessionID string, obs TurnObserver) (TurnOutput, error)

	// Clear resets the conversation.
	Clear(ctx context.Context, sessionID string) (HistoryOutput, error)

	// History returns a read-only view of the conversation.
	History(ctx context.Context, sessionID string) (HistoryOutput, error)

	// SetSystemPrompt replaces the system prompt for later turns.
	SetSystemPrompt(ctx context.Context, sessionID string, input SetSystemPromptInput) (HistoryOutput, error)

	// Preview normalizes files and renders previews without touching any session.
	Preview(ctx context.Context, input PreviewInput) (PreviewOutput, error)
}
