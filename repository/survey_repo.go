package repository

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/mbolis/survey-studio/model"
	"github.com/mbolis/survey-studio/store"
)

type SurveyRepo struct {
	surveys *collection[model.Survey]
	now     func() time.Time
}

func NewSurveyRepo(kv store.KV) *SurveyRepo {
	return &SurveyRepo{
		surveys: &collection[model.Survey]{kv: kv, key: SurveysKey},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *SurveyRepo) LoadAll(ctx context.Context) ([]model.Survey, error) {
	return r.surveys.read(ctx)
}

func (r *SurveyRepo) LoadByID(ctx context.Context, id string) (model.Survey, error) {
	surveys, err := r.surveys.read(ctx)
	if err != nil {
		return model.Survey{}, err
	}
	s, ok := lo.Find(surveys, func(s model.Survey) bool { return s.ID == id })
	if !ok {
		return model.Survey{}, surveyNotFound(id)
	}
	return s, nil
}

// Save inserts s when its id is new (assigning one when empty) or replaces
// the stored survey with the same id, keeping its creation time.
func (r *SurveyRepo) Save(ctx context.Context, s model.Survey) (model.Survey, error) {
	if err := s.Validate(); err != nil {
		return model.Survey{}, err
	}
	if s.ID == "" {
		s.ID = model.NewID()
	}

	err := r.surveys.update(ctx, func(surveys []model.Survey) ([]model.Survey, error) {
		return r.put(surveys, s, &s), nil
	})
	if err != nil {
		return model.Survey{}, err
	}
	return s, nil
}

// Update applies fn to the stored survey and saves the result, all under
// the collection lock. Nothing is written when fn fails.
func (r *SurveyRepo) Update(ctx context.Context, id string, fn func(*model.Survey) error) (model.Survey, error) {
	var saved model.Survey
	err := r.surveys.update(ctx, func(surveys []model.Survey) ([]model.Survey, error) {
		current, ok := lo.Find(surveys, func(s model.Survey) bool { return s.ID == id })
		if !ok {
			return nil, surveyNotFound(id)
		}
		edited := current.Clone()
		if err := fn(&edited); err != nil {
			return nil, err
		}
		edited.ID = id
		if err := edited.Validate(); err != nil {
			return nil, err
		}
		return r.put(surveys, edited, &saved), nil
	})
	if err != nil {
		return model.Survey{}, err
	}
	return saved, nil
}

func (r *SurveyRepo) put(surveys []model.Survey, s model.Survey, saved *model.Survey) []model.Survey {
	now := r.now()
	s.UpdatedAt = now

	_, i, ok := lo.FindIndexOf(surveys, func(old model.Survey) bool { return old.ID == s.ID })
	if ok {
		s.CreatedAt = surveys[i].CreatedAt
		surveys[i] = s
	} else {
		s.CreatedAt = now
		surveys = append(surveys, s)
	}
	*saved = s
	return surveys
}

// DeleteByID removes the survey. Submissions referencing it are kept.
func (r *SurveyRepo) DeleteByID(ctx context.Context, id string) error {
	return r.surveys.update(ctx, func(surveys []model.Survey) ([]model.Survey, error) {
		if !lo.ContainsBy(surveys, func(s model.Survey) bool { return s.ID == id }) {
			return nil, surveyNotFound(id)
		}
		return lo.Reject(surveys, func(s model.Survey, _ int) bool { return s.ID == id }), nil
	})
}
