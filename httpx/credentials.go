package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/oauth"
	"golang.org/x/crypto/bcrypt"

	"github.com/mbolis/survey-studio/config"
	"github.com/mbolis/survey-studio/repository"
)

var errBadCredentials = errors.New("bad credentials")

type credentialsVerifier struct {
	user         string
	passwordHash []byte
	tokens       *repository.TokenRepo
}

// CredentialsVerifier authenticates the single admin account from the
// configuration and keeps issued refresh tokens in tokens.
func CredentialsVerifier(cfg config.Config, tokens *repository.TokenRepo) oauth.CredentialsVerifier {
	return &credentialsVerifier{
		user:         cfg.AdminUser,
		passwordHash: []byte(cfg.AdminPasswordHash),
		tokens:       tokens,
	}
}

func (cs *credentialsVerifier) ValidateUser(username string, password string, scope string, r *http.Request) error {
	if username != cs.user {
		// compare anyway so unknown users take as long as wrong passwords
		bcrypt.CompareHashAndPassword(cs.passwordHash, []byte(password))
		return errBadCredentials
	}
	return bcrypt.CompareHashAndPassword(cs.passwordHash, []byte(password))
}
func (cs *credentialsVerifier) StoreTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	return cs.tokens.Store(context.Background(), credential, tokenID, refreshTokenID)
}
func (cs *credentialsVerifier) ValidateTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	return cs.tokens.Consume(context.Background(), credential, tokenID, refreshTokenID)
}
func (*credentialsVerifier) AddClaims(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{"roles": "admin"}, nil
}
func (*credentialsVerifier) AddProperties(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{}, nil
}
func (*credentialsVerifier) ValidateClient(clientID string, clientSecret string, scope string, r *http.Request) error {
	return errors.New("not supported")
}
