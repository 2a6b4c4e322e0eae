package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// AnswerMap holds a respondent's selections keyed by question id.
//
//	single choice: [optionID]
//	multi choice:  zero or more option ids, no duplicates
//	text entry:    [text]
//	side-by-side:  "rowID:subColumnID" tokens, at most one per row
type AnswerMap map[string][]string

// CellToken joins a matrix row and sub-column into an answer token.
func CellToken(rowID, subColumnID string) string {
	return rowID + ":" + subColumnID
}

// ParseCellToken splits a matrix answer token on its first colon.
func ParseCellToken(token string) (rowID, subColumnID string, err error) {
	rowID, subColumnID, ok := strings.Cut(token, ":")
	if !ok || rowID == "" || subColumnID == "" {
		return "", "", fmt.Errorf("%q: %w", token, ErrMalformedToken)
	}
	return rowID, subColumnID, nil
}

func tokenRow(token string) string {
	row, _, _ := strings.Cut(token, ":")
	return row
}

// Apply records one respondent interaction with question q.
func (a AnswerMap) Apply(q Question, value string) error {
	switch c := q.Config.(type) {
	case SingleChoiceConfig:
		return a.SelectOption(q.ID, c.Options, value)
	case MultiChoiceConfig:
		return a.ToggleOption(q.ID, c.Options, value)
	case TextEntryConfig:
		return a.SetText(q.ID, c, value)
	case SideBySideConfig:
		row, subColumn, err := ParseCellToken(value)
		if err != nil {
			return err
		}
		return a.SelectCell(q.ID, c.Matrix, row, subColumn)
	}
	return q.mismatch("answers")
}

// SelectOption replaces the answer with the single option id.
func (a AnswerMap) SelectOption(questionID string, options *OptionTree, optionID string) error {
	if !options.Has(optionID) {
		return notFound("option", optionID)
	}
	a[questionID] = []string{optionID}
	return nil
}

// ToggleOption adds optionID when absent and removes it when present.
func (a AnswerMap) ToggleOption(questionID string, options *OptionTree, optionID string) error {
	if !options.Has(optionID) {
		return notFound("option", optionID)
	}
	current := a[questionID]
	if lo.Contains(current, optionID) {
		a[questionID] = lo.Without(current, optionID)
		if len(a[questionID]) == 0 {
			delete(a, questionID)
		}
	} else {
		a[questionID] = append(append([]string{}, current...), optionID)
	}
	return nil
}

// SetText replaces the answer with text. Empty text is allowed until submit.
func (a AnswerMap) SetText(questionID string, config TextEntryConfig, text string) error {
	if !config.fits(text) {
		return fmt.Errorf("%d characters max: %w", config.MaxLength, ErrTextTooLong)
	}
	a[questionID] = []string{text}
	return nil
}

// SelectCell records the sub-column chosen for a row, replacing any earlier
// choice for that row.
func (a AnswerMap) SelectCell(questionID string, m *Matrix, rowID, subColumnID string) error {
	if !m.HasCell(rowID, subColumnID) {
		return notFound("cell", CellToken(rowID, subColumnID))
	}
	kept := lo.Reject(a[questionID], func(token string, _ int) bool {
		return tokenRow(token) == rowID
	})
	a[questionID] = append(kept, CellToken(rowID, subColumnID))
	return nil
}

func (a AnswerMap) Clone() AnswerMap {
	if a == nil {
		return AnswerMap{}
	}
	c := make(AnswerMap, len(a))
	for k, v := range a {
		c[k] = append([]string{}, v...)
	}
	return c
}

// Prune drops answers for questions the survey does not have.
func (a AnswerMap) Prune(s Survey) AnswerMap {
	ids := lo.Map(s.Questions, func(q Question, _ int) string { return q.ID })
	for k := range a {
		if !lo.Contains(ids, k) {
			delete(a, k)
		}
	}
	return a
}

// Compact drops questions whose answer list is empty so that an unanswered
// question has exactly one form: no key.
func (a AnswerMap) Compact() AnswerMap {
	for k, v := range a {
		if len(v) == 0 {
			delete(a, k)
		}
	}
	return a
}

func (a *AnswerMap) UnmarshalJSON(data []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = AnswerMap(raw).Compact()
	return nil
}

// Check rejects answers that Apply could never have produced for the
// survey's questions. Keys for questions outside the survey are ignored.
func (a AnswerMap) Check(s Survey) error {
	for _, q := range s.Questions {
		values, ok := a[q.ID]
		if !ok {
			continue
		}
		if err := checkAnswer(q, values); err != nil {
			return fmt.Errorf("question %q: %w", q.ID, err)
		}
	}
	return nil
}

func checkAnswer(q Question, values []string) error {
	switch c := q.Config.(type) {
	case SingleChoiceConfig:
		if len(values) != 1 {
			return fmt.Errorf("%d options for a single choice: %w", len(values), ErrInvalidAnswer)
		}
		return checkOptions(c.Options, values)
	case MultiChoiceConfig:
		if dup := lo.FindDuplicates(values); len(dup) > 0 {
			return fmt.Errorf("option %q repeated: %w", dup[0], ErrInvalidAnswer)
		}
		return checkOptions(c.Options, values)
	case TextEntryConfig:
		if len(values) != 1 {
			return fmt.Errorf("%d texts for a text entry: %w", len(values), ErrInvalidAnswer)
		}
		if !c.fits(values[0]) {
			return fmt.Errorf("%d characters max: %w", c.MaxLength, ErrTextTooLong)
		}
		return nil
	case SideBySideConfig:
		rows := make(map[string]bool, len(values))
		for _, token := range values {
			row, subColumn, err := ParseCellToken(token)
			if err != nil {
				return err
			}
			if !c.HasCell(row, subColumn) {
				return fmt.Errorf("cell %q: %w", token, ErrInvalidAnswer)
			}
			if rows[row] {
				return fmt.Errorf("row %q answered twice: %w", row, ErrInvalidAnswer)
			}
			rows[row] = true
		}
		return nil
	}
	return q.mismatch("answers")
}

func checkOptions(options *OptionTree, values []string) error {
	for _, id := range values {
		if !options.Has(id) {
			return fmt.Errorf("option %q: %w", id, ErrInvalidAnswer)
		}
	}
	return nil
}
