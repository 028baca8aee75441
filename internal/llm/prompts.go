// Package llm provides the text-generation capability used by memoria:
// provider clients (Anthropic, OpenAI, Ollama) behind a common interface,
// prompt templates for fact extraction and memory summarization, and a
// strict response parser for the extraction JSON contract.
package llm

import (
	"fmt"
	"strings"

	"github.com/memoria-chat/memoria/pkg/types"
)

// ExtractionPrompt builds the structured-extraction request for a serialized
// conversation excerpt. The response contract is a single JSON object with
// optional "common" and "character_specific" sections; anything else is
// rejected by ParseExtractionResponse.
func ExtractionPrompt(conversation string) string {
	return fmt.Sprintf(`TASK: Extract durable facts about the user from a conversation excerpt.
OUTPUT: ONLY valid JSON. NO markdown. NO code blocks. NO explanation.

JSON STRUCTURE (all fields optional — omit anything with nothing to report):
{
  "common": {
    "basic_info": {"label": "value"},
    "likes": ["thing the user likes"],
    "dislikes": ["thing the user dislikes"]
  },
  "character_specific": {
    "topics": ["topic the user wants to talk about with this character"],
    "events": ["notable thing that happened to the user"],
    "notes": ["other memorable detail"]
  }
}

RULES:
1. Extract only information the user explicitly stated.
2. No guesses, no inferences, no speculation.
3. Ignore unimportant small talk.
4. Return {} if nothing qualifies.
5. Respond with the JSON object and nothing else.

CONVERSATION:
%s`, conversation)
}

// MemorySummarizationPrompt builds the compaction request that folds old
// bucket entries into a short synthesis. Output is plain text, not JSON.
func MemorySummarizationPrompt(kind types.MemoryKind, entries []string) string {
	var list strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&list, "- %s\n", e)
	}

	return fmt.Sprintf(`TASK: Condense a character's memory log about a user.
The entries below are old %s entries, oldest first. Synthesize them into
3-5 lines of plain text that preserve the durable facts and drop the noise.
Do not number the lines. Do not add commentary before or after.

ENTRIES:
%s`, kind, list.String())
}
