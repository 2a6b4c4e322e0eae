package httpx

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/mbolis/survey-studio/log"
)

var validate = validator.New()

// BindAndValidate decodes the JSON body into v and checks its validate
// tags. On failure the 400 response has already been written.
func BindAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "malformed body: %s", err)
		return false
	}
	if err := validate.Struct(v); err != nil {
		LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.validate_body", "%s", err)
		return false
	}
	return true
}
