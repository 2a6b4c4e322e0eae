package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/mbolis/survey-studio/app"
	"github.com/mbolis/survey-studio/httpx"
	"github.com/mbolis/survey-studio/model"
)

type surveyRequest struct {
	Title       string           `json:"title" validate:"max=200"`
	Description string           `json:"description" validate:"max=2000"`
	Questions   []model.Question `json:"questions"`
}

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req surveyRequest
		if !httpx.BindAndValidate(w, r, &req) {
			return
		}

		survey, err := app.Surveys.Save(r.Context(), model.Survey{
			Title:       req.Title,
			Description: req.Description,
			Questions:   req.Questions,
		})
		if err != nil {
			httpx.LogError(w, r, "db.insert_survey", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, survey)
	}
}

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveys, err := app.Surveys.LoadAll(r.Context())
		if err != nil {
			httpx.LogError(w, r, "db.get_surveys", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"surveys": surveys,
		})
	}
}

func GetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, err := app.Surveys.LoadByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogError(w, r, "db.get_survey", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

// UpdateSurvey replaces title and description. The question list is
// replaced too when the body carries one.
func UpdateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req surveyRequest
		if !httpx.BindAndValidate(w, r, &req) {
			return
		}

		survey, err := app.Surveys.Update(r.Context(), chi.URLParam(r, "id"), func(s *model.Survey) error {
			s.Title = req.Title
			s.Description = req.Description
			if req.Questions != nil {
				s.Questions = req.Questions
			}
			return nil
		})
		if err != nil {
			httpx.LogError(w, r, "db.update_survey", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := app.Surveys.DeleteByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogError(w, r, "db.delete_survey", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
