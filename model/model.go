package model

import (
	"time"

	"github.com/samber/lo"
)

type Survey struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// AddQuestion appends a default question of type t and returns it.
func (s *Survey) AddQuestion(t QuestionType) (Question, error) {
	q, err := NewQuestion(t)
	if err != nil {
		return Question{}, err
	}
	s.Questions = append(s.Questions, q)
	return q, nil
}

// RemoveQuestion drops the question with the given id, if any.
func (s *Survey) RemoveQuestion(questionID string) {
	s.Questions = lo.Reject(s.Questions, func(q Question, _ int) bool {
		return q.ID == questionID
	})
}

// Question returns a pointer into the survey's question list, so edits
// through it land in the survey.
func (s *Survey) Question(questionID string) (*Question, error) {
	_, i, ok := lo.FindIndexOf(s.Questions, func(q Question) bool { return q.ID == questionID })
	if !ok {
		return nil, notFound("question", questionID)
	}
	return &s.Questions[i], nil
}

// ChangeQuestionType swaps the question's type, resetting its config.
func (s *Survey) ChangeQuestionType(questionID string, t QuestionType) (Question, error) {
	q, err := s.Question(questionID)
	if err != nil {
		return Question{}, err
	}
	changed, err := q.WithType(t)
	if err != nil {
		return Question{}, err
	}
	*q = changed
	return changed, nil
}

// Validate checks question id uniqueness and every question's config.
func (s *Survey) Validate() error {
	seen := make(map[string]bool, len(s.Questions))
	for i := range s.Questions {
		q := &s.Questions[i]
		if q.ID == "" || seen[q.ID] {
			return notUnique(q.ID)
		}
		seen[q.ID] = true
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s Survey) Clone() Survey {
	if s.Questions != nil {
		s.Questions = lo.Map(s.Questions, func(q Question, _ int) Question { return q.Clone() })
	}
	return s
}

// SubmissionRecord is an immutable snapshot of one completed answer map.
type SubmissionRecord struct {
	SubmissionID string    `json:"submissionId"`
	SurveyID     string    `json:"surveyId"`
	Title        string    `json:"title"`
	SubmittedAt  time.Time `json:"submittedAt"`
	Answers      AnswerMap `json:"answers"`
}

// NewSubmission checks the shape of every answer, runs the validator and,
// when every required question is answered, builds the record to persist.
func NewSubmission(s Survey, answers AnswerMap, now time.Time) (SubmissionRecord, error) {
	answers = answers.Clone().Compact().Prune(s)
	if err := answers.Check(s); err != nil {
		return SubmissionRecord{}, err
	}
	if err := Validate(s, answers); err != nil {
		return SubmissionRecord{}, err
	}
	return SubmissionRecord{
		SubmissionID: NewID(),
		SurveyID:     s.ID,
		Title:        s.Title,
		SubmittedAt:  now,
		Answers:      answers,
	}, nil
}
