package llm

import (
	"context"

	"github.com/memoria-chat/memoria/pkg/types"
)

// TextGenerator is the interface for the text-generation capability.
//
// Complete is single-prompt completion, used for memory extraction and
// compaction summaries. Chat is multi-turn completion with a system
// instruction, used for character replies. Both are synchronous round
// trips; callers decide whether a failure is fatal (a chat turn) or
// best-effort (memory enrichment).
type TextGenerator interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
	Chat(ctx context.Context, system string, messages []types.Message, maxTokens int) (string, error)
	GetModel() string
}
