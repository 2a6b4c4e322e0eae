package app

import (
	"github.com/go-chi/oauth"

	"github.com/mbolis/survey-studio/config"
	"github.com/mbolis/survey-studio/repository"
)

type App struct {
	*oauth.BearerServer
	config.Config

	Surveys     *repository.SurveyRepo
	Submissions *repository.SubmissionRepo
	Tokens      *repository.TokenRepo
}
