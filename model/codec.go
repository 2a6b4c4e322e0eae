package model

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// questionJSON is the persisted shape: a type tag plus a props object
// whose shape depends on the tag.
type questionJSON struct {
	ID         string              `json:"id"`
	Type       QuestionType        `json:"type"`
	Text       string              `json:"text"`
	IsRequired bool                `json:"isRequired"`
	Props      jsoniter.RawMessage `json:"props"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	if q.Config == nil {
		return nil, fmt.Errorf("question %q has no config: %w", q.ID, ErrTypeConfigMismatch)
	}
	props, err := json.Marshal(q.Config)
	if err != nil {
		return nil, err
	}
	return json.Marshal(questionJSON{
		ID:         q.ID,
		Type:       q.Config.Type(),
		Text:       q.Text,
		IsRequired: q.IsRequired,
		Props:      props,
	})
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t, err := ParseQuestionType(string(raw.Type))
	if err != nil {
		return fmt.Errorf("question %q: %w", raw.ID, err)
	}

	config, err := decodeProps(t, raw.Props)
	if err != nil {
		return fmt.Errorf("question %q: %w", raw.ID, err)
	}

	decoded := Question{
		ID:         raw.ID,
		Text:       raw.Text,
		IsRequired: raw.IsRequired,
		Config:     config,
	}
	if err := decoded.Validate(); err != nil {
		return err
	}
	*q = decoded
	return nil
}

func decodeProps(t QuestionType, props jsoniter.RawMessage) (Config, error) {
	if len(props) == 0 || string(props) == "null" {
		return nil, fmt.Errorf("%s without props: %w", t, ErrTypeConfigMismatch)
	}
	shape := func(err error) error {
		return fmt.Errorf("%s props: %v: %w", t, err, ErrTypeConfigMismatch)
	}

	switch t {
	case SingleChoice, MultiChoice:
		var c struct {
			Options []Option `json:"options"`
		}
		if err := json.Unmarshal(props, &c); err != nil {
			return nil, shape(err)
		}
		tree, err := optionTreeFrom(c.Options)
		if err != nil {
			return nil, err
		}
		if t == SingleChoice {
			return SingleChoiceConfig{Options: tree}, nil
		}
		return MultiChoiceConfig{Options: tree}, nil
	case TextEntry:
		var c TextEntryConfig
		if err := json.Unmarshal(props, &c); err != nil {
			return nil, shape(err)
		}
		return c, nil
	case SideBySideMatrix:
		m := &Matrix{}
		if err := json.Unmarshal(props, m); err != nil {
			return nil, shape(err)
		}
		return SideBySideConfig{Matrix: m}, nil
	}
	return nil, fmt.Errorf("%q: %w", t, ErrUnknownType)
}
