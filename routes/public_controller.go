package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/hashicorp/go-multierror"

	"github.com/mbolis/survey-studio/app"
	"github.com/mbolis/survey-studio/httpx"
	"github.com/mbolis/survey-studio/model"
)

func PublicGetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, err := app.Surveys.LoadByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogError(w, r, "db.get_survey", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

type applyAnswerRequest struct {
	Answers    model.AnswerMap `json:"answers"`
	QuestionID string          `json:"questionId" validate:"required"`
	Value      string          `json:"value"`
}

// PublicApplyAnswer records one interaction with a question into the
// client's answer map and sends the map back. Nothing is stored.
func PublicApplyAnswer(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req applyAnswerRequest
		if !httpx.BindAndValidate(w, r, &req) {
			return
		}

		survey, err := app.Surveys.LoadByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogError(w, r, "db.get_survey", err)
			return
		}
		q, err := survey.Question(req.QuestionID)
		if err != nil {
			httpx.LogError(w, r, "answers.question", err)
			return
		}

		answers := req.Answers.Clone()
		if err := answers.Apply(*q, req.Value); err != nil {
			httpx.LogError(w, r, "answers.apply", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"answers": answers,
		})
	}
}

type submitRequest struct {
	Answers model.AnswerMap `json:"answers"`
}

func PublicSubmitSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if !httpx.BindAndValidate(w, r, &req) {
			return
		}

		survey, err := app.Surveys.LoadByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogError(w, r, "db.get_survey", err)
			return
		}

		record, err := app.Submissions.Submit(r.Context(), survey, req.Answers)
		if err != nil {
			httpx.LogError(w, r, "db.insert_submission", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"submissionId": record.SubmissionID,
		})
	}
}

// PublicCheckAnswers lists every required question still unanswered, in
// survey order. Submitting stops at the first one.
func PublicCheckAnswers(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if !httpx.BindAndValidate(w, r, &req) {
			return
		}

		survey, err := app.Surveys.LoadByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogError(w, r, "db.get_survey", err)
			return
		}
		if err := req.Answers.Check(survey); err != nil {
			httpx.LogError(w, r, "answers.check", err)
			return
		}

		missing := []*model.ValidationError{}
		var merr *multierror.Error
		if errors.As(model.ValidateAll(survey, req.Answers), &merr) {
			for _, err := range merr.Errors {
				var failure *model.ValidationError
				if errors.As(err, &failure) {
					missing = append(missing, failure)
				}
			}
		}

		render.JSON(w, r, map[string]any{
			"complete": len(missing) == 0,
			"missing":  missing,
		})
	}
}
