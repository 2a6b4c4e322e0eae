package model_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/samber/lo"

	"github.com/mbolis/survey-studio/model"
)

func choiceQuestion(t *testing.T, typ model.QuestionType, texts ...string) (model.Question, []string) {
	t.Helper()
	q, err := model.NewQuestion(typ)
	if err != nil {
		t.Fatalf("new question: %v", err)
	}
	tree := model.NewOptionTree(texts...)
	if typ == model.SingleChoice {
		q.Config = model.SingleChoiceConfig{Options: tree}
	} else {
		q.Config = model.MultiChoiceConfig{Options: tree}
	}
	return q, tree.IDs()
}

func simpleMatrix(t *testing.T) (model.Question, *model.Matrix) {
	t.Helper()
	q, err := model.NewQuestion(model.SideBySideMatrix)
	if err != nil {
		t.Fatalf("new question: %v", err)
	}
	m := &model.Matrix{
		Rows: []model.MatrixRow{{ID: "r1", Label: "Coffee"}, {ID: "r2", Label: "Tea"}},
		Columns: []model.ColumnGroup{{
			ID:         "g1",
			Label:      "Taste",
			SubColumns: []model.SubColumn{{ID: "s1", Label: "Good"}, {ID: "s2", Label: "Bad"}},
		}},
	}
	q.Config = model.SideBySideConfig{Matrix: m}
	return q, m
}

func TestSelectOptionReplaces(t *testing.T) {
	q, ids := choiceQuestion(t, model.SingleChoice, "a", "b")
	answers := model.AnswerMap{}

	if err := answers.Apply(q, ids[0]); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := answers.Apply(q, ids[1]); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := answers[q.ID]; !reflect.DeepEqual(got, []string{ids[1]}) {
		t.Fatalf("expected only second option, got %v", got)
	}

	if err := answers.Apply(q, "ghost"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleOrder(t *testing.T) {
	q, ids := choiceQuestion(t, model.MultiChoice, "o1", "o2", "o3")
	o1, o3 := ids[0], ids[2]
	answers := model.AnswerMap{}

	for _, id := range []string{o1, o3, o1} {
		if err := answers.Apply(q, id); err != nil {
			t.Fatalf("toggle %s: %v", id, err)
		}
	}

	if got := answers[q.ID]; !reflect.DeepEqual(got, []string{o3}) {
		t.Fatalf("expected [o3], got %v", got)
	}
}

func TestDoubleToggleRestoresState(t *testing.T) {
	q, ids := choiceQuestion(t, model.MultiChoice, "a", "b", "c")

	starts := []model.AnswerMap{
		{},
		{q.ID: {ids[1]}},
		{q.ID: {ids[0], ids[2]}},
		{"other": {"x"}},
	}
	for _, start := range starts {
		for _, id := range ids {
			answers := start.Clone()
			_ = answers.ToggleOption(q.ID, q.Config.(model.MultiChoiceConfig).Options, id)
			_ = answers.ToggleOption(q.ID, q.Config.(model.MultiChoiceConfig).Options, id)

			// order may change when an existing selection is toggled off and on
			got, want := answers[q.ID], start[q.ID]
			if len(got) != len(want) || !lo.Every(got, want) {
				t.Fatalf("start %v toggling %s twice: got %v", start, id, answers)
			}
			if _, present := answers[q.ID]; present != (len(want) > 0) {
				t.Fatalf("start %v toggling %s twice: key presence changed", start, id)
			}
		}
	}
}

func TestEmptyListsAreCompacted(t *testing.T) {
	q, ids := choiceQuestion(t, model.MultiChoice, "a")

	var answers model.AnswerMap
	if err := json.Unmarshal([]byte(`{"`+q.ID+`":[],"other":null,"kept":["x"]}`), &answers); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(answers, model.AnswerMap{"kept": {"x"}}) {
		t.Fatalf("empty lists survived decoding: %v", answers)
	}

	start := answers.Clone()
	options := q.Config.(model.MultiChoiceConfig).Options
	_ = answers.ToggleOption(q.ID, options, ids[0])
	_ = answers.ToggleOption(q.ID, options, ids[0])
	if !reflect.DeepEqual(answers, start) {
		t.Fatalf("double toggle changed %v into %v", start, answers)
	}

	if got := (model.AnswerMap{q.ID: {}, "kept": {"x"}}).Compact(); !reflect.DeepEqual(got, model.AnswerMap{"kept": {"x"}}) {
		t.Fatalf("compact kept an empty list: %v", got)
	}
}

func TestSelectCellOnePerRow(t *testing.T) {
	q, _ := simpleMatrix(t)
	answers := model.AnswerMap{}

	if err := answers.Apply(q, "r1:s1"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := answers.Apply(q, "r1:s2"); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if got := answers[q.ID]; !reflect.DeepEqual(got, []string{"r1:s2"}) {
		t.Fatalf("expected [r1:s2], got %v", got)
	}
}

func TestSelectCellSequenceNeverRepeatsRow(t *testing.T) {
	q, _ := simpleMatrix(t)
	answers := model.AnswerMap{}

	for _, token := range []string{"r1:s1", "r2:s2", "r1:s2", "r2:s1", "r2:s1", "r1:s1"} {
		if err := answers.Apply(q, token); err != nil {
			t.Fatalf("apply %s: %v", token, err)
		}
		seen := map[string]bool{}
		for _, got := range answers[q.ID] {
			row, _, err := model.ParseCellToken(got)
			if err != nil {
				t.Fatalf("parse %s: %v", got, err)
			}
			if seen[row] {
				t.Fatalf("row %s answered twice: %v", row, answers[q.ID])
			}
			seen[row] = true
		}
	}
}

func TestSelectCellRejectsBadTokens(t *testing.T) {
	q, _ := simpleMatrix(t)
	answers := model.AnswerMap{}

	for _, token := range []string{"r1", ":s1", "r1:", ""} {
		if err := answers.Apply(q, token); !errors.Is(err, model.ErrMalformedToken) {
			t.Fatalf("%q: expected ErrMalformedToken, got %v", token, err)
		}
	}
	for _, token := range []string{"r9:s1", "r1:s9"} {
		if err := answers.Apply(q, token); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("%q: expected ErrNotFound, got %v", token, err)
		}
	}
	if len(answers) != 0 {
		t.Fatalf("rejected tokens were recorded: %v", answers)
	}
}

func TestSetTextLength(t *testing.T) {
	q, _ := model.NewQuestion(model.TextEntry)
	if err := q.SetTextEntry(3, ""); err != nil {
		t.Fatalf("set text entry: %v", err)
	}
	answers := model.AnswerMap{}

	if err := answers.Apply(q, "héé"); err != nil {
		t.Fatalf("three runes should fit: %v", err)
	}
	if err := answers.Apply(q, "four"); !errors.Is(err, model.ErrTextTooLong) {
		t.Fatalf("expected ErrTextTooLong, got %v", err)
	}
	if got := answers[q.ID]; !reflect.DeepEqual(got, []string{"héé"}) {
		t.Fatalf("rejected text replaced answer: %v", got)
	}

	if err := answers.Apply(q, ""); err != nil {
		t.Fatalf("empty text should be accepted: %v", err)
	}
}

func TestApplyWithoutConfig(t *testing.T) {
	q := model.Question{ID: "q1"}
	if err := (model.AnswerMap{}).Apply(q, "x"); !errors.Is(err, model.ErrTypeConfigMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
}

func TestPrune(t *testing.T) {
	var s model.Survey
	q, _ := s.AddQuestion(model.TextEntry)
	answers := model.AnswerMap{q.ID: {"kept"}, "gone": {"x"}}

	answers.Prune(s)

	if !reflect.DeepEqual(answers, model.AnswerMap{q.ID: {"kept"}}) {
		t.Fatalf("unexpected answers: %v", answers)
	}
}
