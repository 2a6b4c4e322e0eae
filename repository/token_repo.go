package repository

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"

	"github.com/mbolis/survey-studio/store"
)

var ErrTokenRejected = errors.New("refresh token rejected")

// RefreshToken records a refresh token issued to a user, so it can be
// redeemed exactly once before it expires.
type RefreshToken struct {
	Credential     string    `json:"credential"`
	TokenID        string    `json:"tokenId"`
	RefreshTokenID string    `json:"refreshTokenId"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

type TokenRepo struct {
	tokens *collection[RefreshToken]
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenRepo(kv store.KV, ttl time.Duration) *TokenRepo {
	return &TokenRepo{
		tokens: &collection[RefreshToken]{kv: kv, key: TokensKey},
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *TokenRepo) Store(ctx context.Context, credential, tokenID, refreshTokenID string) error {
	token := RefreshToken{
		Credential:     credential,
		TokenID:        tokenID,
		RefreshTokenID: refreshTokenID,
		ExpiresAt:      r.now().Add(r.ttl),
	}
	return r.tokens.update(ctx, func(tokens []RefreshToken) ([]RefreshToken, error) {
		return append(tokens, token), nil
	})
}

// Consume removes the matching token and fails if there was none or it had
// already expired.
func (r *TokenRepo) Consume(ctx context.Context, credential, tokenID, refreshTokenID string) error {
	var found RefreshToken
	var ok bool
	err := r.tokens.update(ctx, func(tokens []RefreshToken) ([]RefreshToken, error) {
		var i int
		found, i, ok = lo.FindIndexOf(tokens, func(t RefreshToken) bool {
			return t.Credential == credential && t.TokenID == tokenID && t.RefreshTokenID == refreshTokenID
		})
		if !ok {
			return nil, ErrTokenRejected
		}
		return append(tokens[:i], tokens[i+1:]...), nil
	})
	if err != nil {
		return err
	}
	if !found.ExpiresAt.After(r.now()) {
		return ErrTokenRejected
	}
	return nil
}

// Sweep drops expired tokens and returns how many were removed.
func (r *TokenRepo) Sweep(ctx context.Context) (int, error) {
	var removed int
	err := r.tokens.update(ctx, func(tokens []RefreshToken) ([]RefreshToken, error) {
		now := r.now()
		kept := lo.Filter(tokens, func(t RefreshToken, _ int) bool { return t.ExpiresAt.After(now) })
		removed = len(tokens) - len(kept)
		return kept, nil
	})
	return removed, err
}
