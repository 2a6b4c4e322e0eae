package model

import (
	"fmt"
	"unicode/utf8"
)

const (
	DefaultQuestionText = "New question"
	DefaultMaxLength    = 100
	DefaultPlaceholder  = "Enter your answer"
)

// Config is the type-specific payload of a question. The concrete type is
// the question's type tag, so a question can never carry a config of
// another type.
type Config interface {
	Type() QuestionType
	clone() Config
	validate() error
}

type SingleChoiceConfig struct {
	Options *OptionTree `json:"options"`
}

type MultiChoiceConfig struct {
	Options *OptionTree `json:"options"`
}

type TextEntryConfig struct {
	MaxLength   int    `json:"maxLength"`
	Placeholder string `json:"placeholder"`
}

type SideBySideConfig struct {
	*Matrix
}

func (SingleChoiceConfig) Type() QuestionType { return SingleChoice }
func (MultiChoiceConfig) Type() QuestionType  { return MultiChoice }
func (TextEntryConfig) Type() QuestionType    { return TextEntry }
func (SideBySideConfig) Type() QuestionType   { return SideBySideMatrix }

func (c SingleChoiceConfig) clone() Config { return SingleChoiceConfig{Options: c.Options.Clone()} }
func (c MultiChoiceConfig) clone() Config  { return MultiChoiceConfig{Options: c.Options.Clone()} }
func (c TextEntryConfig) clone() Config    { return c }
func (c SideBySideConfig) clone() Config   { return SideBySideConfig{Matrix: c.Matrix.Clone()} }

func (c SingleChoiceConfig) validate() error { return validateOptions(c.Options) }
func (c MultiChoiceConfig) validate() error  { return validateOptions(c.Options) }

func (c TextEntryConfig) validate() error {
	if c.MaxLength <= 0 {
		return fmt.Errorf("maxLength %d: %w", c.MaxLength, ErrInvalidConfig)
	}
	return nil
}

func (c SideBySideConfig) validate() error {
	if c.Matrix == nil {
		return fmt.Errorf("missing matrix: %w", ErrInvalidConfig)
	}
	return c.Matrix.validate()
}

func validateOptions(t *OptionTree) error {
	if t == nil {
		return fmt.Errorf("missing options: %w", ErrInvalidConfig)
	}
	return nil
}

// DefaultConfig is the canonical configuration of a new question of type t.
func DefaultConfig(t QuestionType) (Config, error) {
	switch t {
	case SingleChoice:
		return SingleChoiceConfig{Options: NewOptionTree("Option 1", "Option 2")}, nil
	case MultiChoice:
		return MultiChoiceConfig{Options: NewOptionTree("Option 1", "Option 2")}, nil
	case TextEntry:
		return TextEntryConfig{MaxLength: DefaultMaxLength, Placeholder: DefaultPlaceholder}, nil
	case SideBySideMatrix:
		m := &Matrix{}
		m.SetRowCount(2)
		m.Columns = []ColumnGroup{newColumnGroup(0, 2), newColumnGroup(1, 2)}
		return SideBySideConfig{Matrix: m}, nil
	}
	return nil, fmt.Errorf("%q: %w", t, ErrUnknownType)
}

type Question struct {
	ID         string
	Text       string
	IsRequired bool
	Config     Config
}

// NewQuestion returns a question of type t with a fresh id and the default
// config for t. Every authoring path creates questions through here.
func NewQuestion(t QuestionType) (Question, error) {
	config, err := DefaultConfig(t)
	if err != nil {
		return Question{}, err
	}
	return Question{
		ID:     NewID(),
		Text:   DefaultQuestionText,
		Config: config,
	}, nil
}

// Type is derived from the config; nil config has no type.
func (q Question) Type() QuestionType {
	if q.Config == nil {
		return ""
	}
	return q.Config.Type()
}

// WithType returns a copy of q with its config replaced by the default for t.
// The old config is never kept under the new tag, even when t is unchanged.
func (q Question) WithType(t QuestionType) (Question, error) {
	config, err := DefaultConfig(t)
	if err != nil {
		return q, err
	}
	q.Config = config
	return q, nil
}

func (q Question) WithRequired(required bool) Question {
	q = q.Clone()
	q.IsRequired = required
	return q
}

func (q Question) WithText(text string) Question {
	q = q.Clone()
	q.Text = text
	return q
}

func (q Question) Clone() Question {
	if q.Config != nil {
		q.Config = q.Config.clone()
	}
	return q
}

// Choices returns the option tree of a single or multi choice question.
func (q *Question) Choices() (*OptionTree, error) {
	switch c := q.Config.(type) {
	case SingleChoiceConfig:
		return c.Options, nil
	case MultiChoiceConfig:
		return c.Options, nil
	}
	return nil, q.mismatch("options")
}

// Matrix returns the row/column structure of a side-by-side question.
func (q *Question) Matrix() (*Matrix, error) {
	if c, ok := q.Config.(SideBySideConfig); ok {
		return c.Matrix, nil
	}
	return nil, q.mismatch("matrix")
}

func (q *Question) SetTextEntry(maxLength int, placeholder string) error {
	if _, ok := q.Config.(TextEntryConfig); !ok {
		return q.mismatch("text entry settings")
	}
	c := TextEntryConfig{MaxLength: maxLength, Placeholder: placeholder}
	if err := c.validate(); err != nil {
		return err
	}
	q.Config = c
	return nil
}

func (q *Question) mismatch(what string) error {
	return fmt.Errorf("question %q of type %q has no %s: %w", q.ID, q.Type(), what, ErrTypeConfigMismatch)
}

// Validate checks the structural invariants of the question's config.
func (q *Question) Validate() error {
	if q.Config == nil {
		return fmt.Errorf("question %q has no config: %w", q.ID, ErrTypeConfigMismatch)
	}
	if err := q.Config.validate(); err != nil {
		return fmt.Errorf("question %q: %w", q.ID, err)
	}
	return nil
}

func (c TextEntryConfig) fits(text string) bool {
	return utf8.RuneCountInString(text) <= c.MaxLength
}
