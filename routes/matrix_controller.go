package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mbolis/survey-studio/app"
	"github.com/mbolis/survey-studio/httpx"
	"github.com/mbolis/survey-studio/model"
)

// editMatrix is editQuestion for side-by-side questions only.
func editMatrix(app app.App, code string, w http.ResponseWriter, r *http.Request, edit func(m *model.Matrix) error) {
	editQuestion(app, code, w, r, func(q *model.Question) error {
		m, err := q.Matrix()
		if err != nil {
			return err
		}
		return edit(m)
	})
}

type resizeMatrixRequest struct {
	Rows    *int `json:"rows" validate:"omitempty,max=100"`
	Columns *int `json:"columns" validate:"omitempty,max=20"`
}

// ResizeMatrix sets the row and column group counts. Counts below one are
// raised to one.
func ResizeMatrix(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resizeMatrixRequest
		if !httpx.BindAndValidate(w, r, &req) {
			return
		}

		editMatrix(app, "db.resize_matrix", w, r, func(m *model.Matrix) error {
			if req.Rows != nil {
				m.SetRowCount(*req.Rows)
			}
			if req.Columns != nil {
				m.SetColumnGroupCount(*req.Columns)
			}
			return nil
		})
	}
}

type resizeSubColumnsRequest struct {
	Count int `json:"count" validate:"max=20"`
}

func ResizeSubColumns(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resizeSubColumnsRequest
		if !httpx.BindAndValidate(w, r, &req) {
			return
		}

		editMatrix(app, "db.resize_sub_columns", w, r, func(m *model.Matrix) error {
			return m.SetSubColumnCount(chi.URLParam(r, "groupId"), req.Count)
		})
	}
}

type matrixLabelRequest struct {
	Label string `json:"label" validate:"max=500"`
}

func SetRowLabel(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matrixLabelRequest
		if !httpx.BindAndValidate(w, r, &req) {
			return
		}

		editMatrix(app, "db.set_row_label", w, r, func(m *model.Matrix) error {
			return m.SetRowLabel(chi.URLParam(r, "rowId"), req.Label)
		})
	}
}

func SetColumnGroupLabel(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matrixLabelRequest
		if !httpx.BindAndValidate(w, r, &req) {
			return
		}

		editMatrix(app, "db.set_column_label", w, r, func(m *model.Matrix) error {
			return m.SetColumnGroupLabel(chi.URLParam(r, "groupId"), req.Label)
		})
	}
}

func SetSubColumnLabel(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matrixLabelRequest
		if !httpx.BindAndValidate(w, r, &req) {
			return
		}

		editMatrix(app, "db.set_sub_column_label", w, r, func(m *model.Matrix) error {
			return m.SetSubColumnLabel(chi.URLParam(r, "groupId"), chi.URLParam(r, "subColumnId"), req.Label)
		})
	}
}
