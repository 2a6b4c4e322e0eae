package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/mbolis/survey-studio/app"
	"github.com/mbolis/survey-studio/httpx"
	"github.com/mbolis/survey-studio/model"
)

// editQuestion applies edit to one question inside an atomic survey update
// and responds with the question as saved.
func editQuestion(app app.App, code string, w http.ResponseWriter, r *http.Request, edit func(q *model.Question) error) {
	questionID := chi.URLParam(r, "questionId")

	var edited model.Question
	_, err := app.Surveys.Update(r.Context(), chi.URLParam(r, "id"), func(s *model.Survey) error {
		q, err := s.Question(questionID)
		if err != nil {
			return err
		}
		if err := edit(q); err != nil {
			return err
		}
		edited = q.Clone()
		return nil
	})
	if err != nil {
		httpx.LogError(w, r, code, err)
		return
	}

	render.JSON(w, r, edited)
}

type addQuestionRequest struct {
	Type string `json:"type" validate:"required"`
}

func AddQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addQuestionRequest
		if !httpx.BindAndValidate(w, r, &req) {
			return
		}
		t, err := model.ParseQuestionType(req.Type)
		if err != nil {
			httpx.LogError(w, r, "request.question_type", err)
			return
		}

		var added model.Question
		_, err = app.Surveys.Update(r.Context(), chi.URLParam(r, "id"), func(s *model.Survey) (err error) {
			added, err = s.AddQuestion(t)
			return
		})
		if err != nil {
			httpx.LogError(w, r, "db.add_question", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, added)
	}
}

func RemoveQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := app.Surveys.Update(r.Context(), chi.URLParam(r, "id"), func(s *model.Survey) error {
			s.RemoveQuestion(chi.URLParam(r, "questionId"))
			return nil
		})
		if err != nil {
			httpx.LogError(w, r, "db.remove_question", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type questionPatch struct {
	Type        *string `json:"type"`
	Text        *string `json:"text" validate:"omitempty,max=1000"`
	IsRequired  *bool   `json:"isRequired"`
	MaxLength   *int    `json:"maxLength" validate:"omitempty,min=1,max=10000"`
	Placeholder *string `json:"placeholder" validate:"omitempty,max=200"`
}

// PatchQuestion changes the fields present in the body. A type change
// happens first and resets the config, so text entry settings in the same
// body apply to the new default.
func PatchQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req questionPatch
		if !httpx.BindAndValidate(w, r, &req) {
			return
		}

		editQuestion(app, "db.patch_question", w, r, func(q *model.Question) error {
			if req.Type != nil {
				t, err := model.ParseQuestionType(*req.Type)
				if err != nil {
					return err
				}
				if *q, err = q.WithType(t); err != nil {
					return err
				}
			}
			if req.Text != nil {
				*q = q.WithText(*req.Text)
			}
			if req.IsRequired != nil {
				*q = q.WithRequired(*req.IsRequired)
			}
			if req.MaxLength != nil || req.Placeholder != nil {
				current, ok := q.Config.(model.TextEntryConfig)
				if !ok {
					// reports the type mismatch
					return q.SetTextEntry(0, "")
				}
				if req.MaxLength != nil {
					current.MaxLength = *req.MaxLength
				}
				if req.Placeholder != nil {
					current.Placeholder = *req.Placeholder
				}
				return q.SetTextEntry(current.MaxLength, current.Placeholder)
			}
			return nil
		})
	}
}

type addOptionRequest struct {
	ParentID string `json:"parentId"`
}

func AddOption(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addOptionRequest
		if !httpx.BindAndValidate(w, r, &req) {
			return
		}

		editQuestion(app, "db.add_option", w, r, func(q *model.Question) error {
			options, err := q.Choices()
			if err != nil {
				return err
			}
			_, err = options.AddOption(req.ParentID)
			return err
		})
	}
}

type labelRequest struct {
	Text string `json:"text" validate:"max=500"`
}

func UpdateOption(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req labelRequest
		if !httpx.BindAndValidate(w, r, &req) {
			return
		}

		editQuestion(app, "db.update_option", w, r, func(q *model.Question) error {
			options, err := q.Choices()
			if err != nil {
				return err
			}
			return options.UpdateOptionText(chi.URLParam(r, "optionId"), req.Text)
		})
	}
}

func RemoveOption(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		editQuestion(app, "db.remove_option", w, r, func(q *model.Question) error {
			options, err := q.Choices()
			if err != nil {
				return err
			}
			return options.RemoveOption(chi.URLParam(r, "optionId"))
		})
	}
}
