package httpx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/mbolis/survey-studio/log"
	"github.com/mbolis/survey-studio/model"
	"github.com/mbolis/survey-studio/repository"
)

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, code string, err error) {
	log.Errorf("%s: %s", code, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Will log a debug message, and send an HTTP response with status 404 and default text
func LogNotFound(w http.ResponseWriter, code string, err error) {
	log.Debugf("%s: %s", code, err)
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

// Will log an error code at the given level, and send
// an HTTP response with status and default text
func LogStatus(w http.ResponseWriter, status int, level log.Level, code string) {
	log.Log(level, code)
	http.Error(w, http.StatusText(status), status)
}

// Will log an error code and message at the given level,
// and send an HTTP response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	http.Error(w, errMsg, status)
}

// LogError picks the response for err from the domain error it wraps:
// 404 for missing ids, 422 for unanswered required questions, 400 for
// requests the model refuses, 500 for everything else.
func LogError(w http.ResponseWriter, r *http.Request, code string, err error) {
	var failure *model.ValidationError
	switch {
	case errors.As(err, &failure):
		log.Debugf("%s: %s", code, err)
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, map[string]any{
			"questionId": failure.QuestionID,
			"text":       failure.Text,
			"error":      failure.Error(),
		})

	case errors.Is(err, model.ErrNotFound):
		LogNotFound(w, code, err)

	case errors.Is(err, model.ErrTypeConfigMismatch),
		errors.Is(err, model.ErrInvalidConfig),
		errors.Is(err, model.ErrUnknownType),
		errors.Is(err, model.ErrMinimumReached),
		errors.Is(err, model.ErrMalformedToken),
		errors.Is(err, model.ErrTextTooLong),
		errors.Is(err, model.ErrInvalidAnswer):
		LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, code, "%s", err)

	case errors.Is(err, repository.ErrStorageDecode):
		LogInternalError(w, code+".storage_decode", err)

	default:
		LogInternalError(w, code, err)
	}
}
