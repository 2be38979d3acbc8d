//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/astro-koharu/koharu/internal/domain/repositories"
)

// SpyPrompter implements repositories.Prompter as a configurable spy.
// Answers are consumed in order; once exhausted the prompt's default is
// returned, which mirrors a user hitting enter.
type SpyPrompter struct {
	Answers    []bool
	ConfirmErr error
	Questions  []string
}

var _ repositories.Prompter = (*SpyPrompter)(nil)

func (p *SpyPrompter) Confirm(question string, defaultYes bool) (bool, error) {
	p.Questions = append(p.Questions, question)
	if p.ConfirmErr != nil {
		return false, p.ConfirmErr
	}
	if len(p.Answers) == 0 {
		return defaultYes, nil
	}
	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	return answer, nil
}
