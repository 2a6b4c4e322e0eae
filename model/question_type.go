package model

import "fmt"

type QuestionType string

const (
	SingleChoice     QuestionType = "MULTIPLE_CHOICE"
	MultiChoice      QuestionType = "MULTIPLE_CHOICE_MULTIPLE"
	TextEntry        QuestionType = "TEXT_ENTRY"
	SideBySideMatrix QuestionType = "SIDE_BY_SIDE"

	// older editors stored checkbox questions under this name
	checkboxAlias QuestionType = "CHECKBOX"
)

var QuestionTypes = []QuestionType{SingleChoice, MultiChoice, TextEntry, SideBySideMatrix}

func (t QuestionType) Valid() bool {
	switch t {
	case SingleChoice, MultiChoice, TextEntry, SideBySideMatrix:
		return true
	}
	return false
}

func (t QuestionType) String() string {
	return string(t)
}

// ParseQuestionType accepts the wire names, including the legacy CHECKBOX alias.
func ParseQuestionType(s string) (QuestionType, error) {
	t := QuestionType(s)
	if t == checkboxAlias {
		return MultiChoice, nil
	}
	if !t.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownType)
	}
	return t, nil
}
