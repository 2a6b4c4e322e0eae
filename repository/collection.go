package repository

import (
	"context"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/mbolis/survey-studio/log"
	"github.com/mbolis/survey-studio/store"
)

const (
	SurveysKey     = "savedSurveys"
	SubmissionsKey = "surveyResults"
	TokensKey      = "oauthTokens"
)

// ErrStorageDecode means the key holds a value that does not parse as the
// expected collection. An absent key is an empty collection, not an error.
var ErrStorageDecode = errors.New("stored collection is corrupt")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// collection is one key of the store holding a JSON list. Every
// read-modify-write runs under mu, so two saves on the same key never
// interleave.
type collection[T any] struct {
	mu  sync.Mutex
	kv  store.KV
	key string
}

func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, errors.Wrapf(err, "storage.get.%s", c.key)
	}
	if !ok {
		return []T{}, nil
	}

	var items []T
	if err := json.UnmarshalFromString(raw, &items); err != nil {
		log.WithFields(log.Fields{"key": c.key}).Warnf("storage.decode.%s: %v", c.key, err)
		return nil, errors.Wrapf(ErrStorageDecode, "%s: %v", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	raw, err := json.MarshalToString(items)
	if err != nil {
		return errors.Wrapf(err, "storage.encode.%s", c.key)
	}
	return errors.Wrapf(c.kv.Set(ctx, c.key, raw), "storage.set.%s", c.key)
}

func (c *collection[T]) read(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// update loads the collection, hands it to fn and writes back what fn
// returns. A corrupt collection is never overwritten.
func (c *collection[T]) update(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return c.save(ctx, items)
}
