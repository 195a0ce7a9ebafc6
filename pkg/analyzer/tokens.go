package analyzer

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tokenizerOnce sync.Once
	tokenizer     *tiktoken.Tiktoken
)

// EstimateTokens offline-estimates how many LLM context tokens skeleton
// text would consume, using the cl100k_base encoding (the Claude/GPT-4
// family shares its vocabulary closely enough for a context-budget
// estimate; exact encodings differ per model). Returns 0 if the encoding
// table can't be loaded.
func EstimateTokens(skeleton string) int {
	tokenizerOnce.Do(func() {
		tk, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			tokenizer = tk
		}
	})
	if tokenizer == nil {
		return 0
	}
	return len(tokenizer.Encode(skeleton, nil, nil))
}
