package repository

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/mbolis/survey-studio/model"
	"github.com/mbolis/survey-studio/store"
)

type SubmissionRepo struct {
	submissions *collection[model.SubmissionRecord]
	now         func() time.Time
}

func NewSubmissionRepo(kv store.KV) *SubmissionRepo {
	return &SubmissionRepo{
		submissions: &collection[model.SubmissionRecord]{kv: kv, key: SubmissionsKey},
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates answers against s and appends the resulting record.
// A failed validation leaves the stored results untouched.
func (r *SubmissionRepo) Submit(ctx context.Context, s model.Survey, answers model.AnswerMap) (model.SubmissionRecord, error) {
	record, err := model.NewSubmission(s, answers, r.now())
	if err != nil {
		return model.SubmissionRecord{}, err
	}

	err = r.submissions.update(ctx, func(records []model.SubmissionRecord) ([]model.SubmissionRecord, error) {
		return append(records, record), nil
	})
	if err != nil {
		return model.SubmissionRecord{}, err
	}
	return record, nil
}

func (r *SubmissionRepo) LoadAll(ctx context.Context) ([]model.SubmissionRecord, error) {
	return r.submissions.read(ctx)
}

func (r *SubmissionRepo) LoadBySurvey(ctx context.Context, surveyID string) ([]model.SubmissionRecord, error) {
	records, err := r.submissions.read(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(records, func(rec model.SubmissionRecord, _ int) bool {
		return rec.SurveyID == surveyID
	}), nil
}

func (r *SubmissionRepo) LoadByID(ctx context.Context, id string) (model.SubmissionRecord, error) {
	records, err := r.submissions.read(ctx)
	if err != nil {
		return model.SubmissionRecord{}, err
	}
	rec, ok := lo.Find(records, func(rec model.SubmissionRecord) bool { return rec.SubmissionID == id })
	if !ok {
		return model.SubmissionRecord{}, submissionNotFound(id)
	}
	return rec, nil
}

func (r *SubmissionRepo) DeleteByID(ctx context.Context, id string) error {
	return r.submissions.update(ctx, func(records []model.SubmissionRecord) ([]model.SubmissionRecord, error) {
		if !lo.ContainsBy(records, func(rec model.SubmissionRecord) bool { return rec.SubmissionID == id }) {
			return nil, submissionNotFound(id)
		}
		return lo.Reject(records, func(rec model.SubmissionRecord, _ int) bool { return rec.SubmissionID == id }), nil
	})
}
