package repository

import (
	"fmt"

	"github.com/mbolis/survey-studio/model"
)

func surveyNotFound(id string) error {
	return fmt.Errorf("survey %q: %w", id, model.ErrNotFound)
}

func submissionNotFound(id string) error {
	return fmt.Errorf("submission %q: %w", id, model.ErrNotFound)
}
