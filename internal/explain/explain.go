// Package explain turns analysis output into a short coaching message.
// The default explainer is template based and fully offline; an LLM
// backed explainer can be layered on top and falls back to the
// template when the provider fails.
package explain

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/bojcoach/internal/pattern"
	"github.com/abhisek/bojcoach/internal/solvedac"
	"github.com/abhisek/bojcoach/internal/tier"
	"github.com/abhisek/bojcoach/internal/weakness"
)

// Summary is everything an explainer may draw on.
type Summary struct {
	User     *solvedac.User
	WeakTags []weakness.WeakTag
	Trend    pattern.Trend
	Ready    bool
}

// Explainer produces a personalized coaching message.
type Explainer interface {
	Explain(ctx context.Context, sum Summary) (string, error)
}

// TemplateExplainer builds the message from fixed templates. It never
// fails, which makes it the fallback for the LLM explainer.
type TemplateExplainer struct{}

func NewTemplateExplainer() *TemplateExplainer {
	return &TemplateExplainer{}
}

func (e *TemplateExplainer) Explain(_ context.Context, sum Summary) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s, you are %s with %d problems solved.",
		sum.User.Handle, tier.Name(sum.User.Tier), sum.User.SolvedCount)

	switch {
	case len(sum.WeakTags) == 0:
		b.WriteString(" No weak areas stand out right now, so keep a steady mix of practice.")
	case len(sum.WeakTags) == 1:
		fmt.Fprintf(&b, " Your main weak area is %s; a focused week there will pay off quickly.",
			sum.WeakTags[0].Tag)
	default:
		tags := make([]string, 0, len(sum.WeakTags))
		for _, w := range sum.WeakTags {
			tags = append(tags, w.Tag)
		}
		fmt.Fprintf(&b, " Your weakest areas are %s; start with %s, where the gap is largest.",
			strings.Join(tags, ", "), tags[0])
	}

	switch sum.Trend {
	case pattern.TrendImproving:
		b.WriteString(" You have been on an upward streak lately.")
	case pattern.TrendDeclining:
		b.WriteString(" Recent sessions have been rough, so ease back into easier problems first.")
	}

	if sum.Ready {
		fmt.Fprintf(&b, " You look ready to push for %s.", tier.Name(sum.User.Tier+1))
	}

	return b.String(), nil
}
