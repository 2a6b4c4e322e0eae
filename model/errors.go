package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUnknownType        = errors.New("unknown question type")
	ErrTypeConfigMismatch = errors.New("question config does not match its type")
	ErrInvalidConfig      = errors.New("invalid question config")
	ErrMinimumReached     = errors.New("minimum count reached")
	ErrMalformedToken     = errors.New("malformed matrix token")
	ErrTextTooLong        = errors.New("text exceeds max length")
	ErrRequired           = errors.New("required question unanswered")
	ErrInvalidAnswer      = errors.New("answer does not fit its question")
)

// ValidationError names the first required question left unanswered.
type ValidationError struct {
	QuestionID string `json:"questionId"`
	Text       string `json:"text"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required question %q (%s) is unanswered", e.Text, e.QuestionID)
}

func (e *ValidationError) Unwrap() error {
	return ErrRequired
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

func notUnique(questionID string) error {
	return fmt.Errorf("question id %q missing or repeated: %w", questionID, ErrInvalidConfig)
}
