package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/mbolis/survey-studio/app"
	"github.com/mbolis/survey-studio/httpx"
	"github.com/mbolis/survey-studio/model"
)

// ListResults lists every submission, or those of one survey when the
// surveyId query parameter is set.
func ListResults(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			results []model.SubmissionRecord
			err     error
		)
		if surveyID := r.URL.Query().Get("surveyId"); surveyID != "" {
			results, err = app.Submissions.LoadBySurvey(r.Context(), surveyID)
		} else {
			results, err = app.Submissions.LoadAll(r.Context())
		}
		if err != nil {
			httpx.LogError(w, r, "db.get_results", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"results": results,
		})
	}
}

// GetResult sends a submission with the survey it answered. The survey is
// null once it has been deleted.
func GetResult(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := app.Submissions.LoadByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogError(w, r, "db.get_result", err)
			return
		}

		var survey *model.Survey
		s, err := app.Surveys.LoadByID(r.Context(), result.SurveyID)
		switch {
		case err == nil:
			survey = &s
		case !errors.Is(err, model.ErrNotFound):
			httpx.LogError(w, r, "db.get_result.survey", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"result": result,
			"survey": survey,
		})
	}
}

func DeleteResult(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := app.Submissions.DeleteByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogError(w, r, "db.delete_result", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
