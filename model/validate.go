package model

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

// Answered reports whether answers satisfy q when q is required.
func Answered(q Question, answers AnswerMap) bool {
	given := answers[q.ID]

	switch c := q.Config.(type) {
	case SingleChoiceConfig, MultiChoiceConfig:
		return len(given) > 0
	case TextEntryConfig:
		return len(given) > 0 && strings.TrimSpace(given[0]) != ""
	case SideBySideConfig:
		// a matrix without rows has nothing to answer
		covered := lo.Map(given, func(token string, _ int) string { return tokenRow(token) })
		return lo.Every(covered, c.RowIDs())
	}
	return false
}

// Validate stops at the first required question, in survey order, that is
// not answered.
func Validate(s Survey, answers AnswerMap) error {
	for _, q := range s.Questions {
		if q.IsRequired && !Answered(q, answers) {
			return &ValidationError{QuestionID: q.ID, Text: q.Text}
		}
	}
	return nil
}

// ValidateAll reports every unanswered required question, in survey order.
func ValidateAll(s Survey, answers AnswerMap) error {
	var result *multierror.Error
	for _, q := range s.Questions {
		if q.IsRequired && !Answered(q, answers) {
			result = multierror.Append(result, &ValidationError{QuestionID: q.ID, Text: q.Text})
		}
	}
	return result.ErrorOrNil()
}
