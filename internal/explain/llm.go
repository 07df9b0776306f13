package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/bojcoach/internal/llm"
	"github.com/abhisek/bojcoach/internal/tier"
)

const systemPrompt = `You are a competitive programming coach for Baekjoon Online Judge users.
Write one short, encouraging paragraph (3-4 sentences) reacting to the
solver's profile. Mention the weakest tag by name if there is one.
Plain text only, no markdown, no lists.`

// LLMExplainer asks an LLM for the coaching message and falls back to
// the template explainer on any provider error.
type LLMExplainer struct {
	provider llm.Provider
	fallback Explainer
}

// NewLLMExplainer wraps provider with a template fallback.
func NewLLMExplainer(provider llm.Provider) *LLMExplainer {
	return &LLMExplainer{provider: provider, fallback: NewTemplateExplainer()}
}

func (e *LLMExplainer) Explain(ctx context.Context, sum Summary) (string, error) {
	ctx = llm.WithPurpose(ctx, "explain")

	resp, err := e.provider.Generate(ctx, llm.TextRequest(systemPrompt, promptFor(sum), 400, 0.7))
	if err != nil {
		return e.fallback.Explain(ctx, sum)
	}

	var text string
	if err := json.Unmarshal(resp.Content, &text); err != nil {
		text = string(resp.Content)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return e.fallback.Explain(ctx, sum)
	}
	return text, nil
}

func promptFor(sum Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Handle: %s\nTier: %s\nRating: %d\nSolved: %d\n",
		sum.User.Handle, tier.Name(sum.User.Tier), sum.User.Rating, sum.User.SolvedCount)
	if len(sum.WeakTags) > 0 {
		b.WriteString("Weak tags (worst first):\n")
		for _, w := range sum.WeakTags {
			fmt.Fprintf(&b, "- %s: %.1f%% accuracy over %d tries\n", w.Tag, w.SuccessRate, w.Tried)
		}
	} else {
		b.WriteString("Weak tags: none\n")
	}
	if sum.Trend != "" {
		fmt.Fprintf(&b, "Recent trend: %s\n", sum.Trend)
	}
	fmt.Fprintf(&b, "Ready for next tier: %t\n", sum.Ready)
	return b.String()
}
