package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mbolis/survey-studio/model"
	"github.com/mbolis/survey-studio/store"
)

func clock(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Minute)
		return now
	}
}

func newSurvey(t *testing.T, title string, types ...model.QuestionType) model.Survey {
	t.Helper()
	s := model.Survey{Title: title}
	for _, typ := range types {
		if _, err := s.AddQuestion(typ); err != nil {
			t.Fatalf("add question: %v", err)
		}
	}
	return s
}

func TestSurveySaveInsertThenReplace(t *testing.T) {
	ctx := context.Background()
	repo := NewSurveyRepo(store.NewMemory())
	repo.now = clock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	saved, err := repo.Save(ctx, newSurvey(t, "first", model.TextEntry))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" || saved.CreatedAt.IsZero() || !saved.CreatedAt.Equal(saved.UpdatedAt) {
		t.Fatalf("unexpected stamps: %+v", saved)
	}

	saved.Title = "renamed"
	replaced, err := repo.Save(ctx, saved)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if !replaced.CreatedAt.Equal(saved.CreatedAt) || !replaced.UpdatedAt.After(saved.UpdatedAt) {
		t.Fatalf("stamps not kept/updated: before %+v after %+v", saved, replaced)
	}

	all, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(all) != 1 || all[0].Title != "renamed" {
		t.Fatalf("expected one renamed survey, got %+v", all)
	}

	loaded, err := repo.LoadByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("load by id: %v", err)
	}
	if len(loaded.Questions) != 1 || loaded.Questions[0].Type() != model.TextEntry {
		t.Fatalf("questions not persisted: %+v", loaded.Questions)
	}
}

func TestSurveyLoadAllEmpty(t *testing.T) {
	all, err := NewSurveyRepo(store.NewMemory()).LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("expected empty list, got %#v", all)
	}
}

func TestSurveyNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewSurveyRepo(store.NewMemory())

	if _, err := repo.LoadByID(ctx, "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("load: expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteByID(ctx, "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Update(ctx, "nope", func(*model.Survey) error { return nil }); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
}

func TestSurveyUpdateIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewSurveyRepo(store.NewMemory())
	saved, _ := repo.Save(ctx, newSurvey(t, "s"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, saved.ID, func(s *model.Survey) error {
				_, err := s.AddQuestion(model.MultiChoice)
				return err
			})
			if err != nil {
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	loaded, _ := repo.LoadByID(ctx, saved.ID)
	if len(loaded.Questions) != 20 {
		t.Fatalf("expected 20 questions, got %d", len(loaded.Questions))
	}
}

func TestSurveyUpdateFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewSurveyRepo(store.NewMemory())
	saved, _ := repo.Save(ctx, newSurvey(t, "s", model.SingleChoice))
	boom := errors.New("boom")

	_, err := repo.Update(ctx, saved.ID, func(s *model.Survey) error {
		s.Title = "changed"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	loaded, _ := repo.LoadByID(ctx, saved.ID)
	if loaded.Title != "s" {
		t.Fatalf("failed update was written: %+v", loaded)
	}
}

func TestCorruptCollection(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	_ = kv.Set(ctx, SurveysKey, "{not json")
	repo := NewSurveyRepo(kv)

	if _, err := repo.LoadAll(ctx); !errors.Is(err, ErrStorageDecode) {
		t.Fatalf("expected ErrStorageDecode, got %v", err)
	}
	if _, err := repo.Save(ctx, newSurvey(t, "s")); !errors.Is(err, ErrStorageDecode) {
		t.Fatalf("save onto corrupt collection: expected ErrStorageDecode, got %v", err)
	}
	raw, _, _ := kv.Get(ctx, SurveysKey)
	if raw != "{not json" {
		t.Fatalf("corrupt collection was overwritten: %q", raw)
	}
}

func TestCorruptQuestionConfig(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	_ = kv.Set(ctx, SurveysKey, `[{"id":"s1","questions":[{"id":"q1","type":"TEXT_ENTRY","props":{"options":[]}}]}]`)

	_, err := NewSurveyRepo(kv).LoadByID(ctx, "s1")
	if !errors.Is(err, ErrStorageDecode) {
		t.Fatalf("expected ErrStorageDecode, got %v", err)
	}
}

func TestSubmitAndLoad(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	surveys := NewSurveyRepo(kv)
	submissions := NewSubmissionRepo(kv)

	s := newSurvey(t, "feedback", model.TextEntry)
	s.Questions[0].IsRequired = true
	s, _ = surveys.Save(ctx, s)
	qid := s.Questions[0].ID

	if _, err := submissions.Submit(ctx, s, model.AnswerMap{qid: {"  "}}); !errors.Is(err, model.ErrRequired) {
		t.Fatalf("expected ErrRequired, got %v", err)
	}
	if _, ok, _ := kv.Get(ctx, SubmissionsKey); ok {
		t.Fatal("failed submission touched storage")
	}

	record, err := submissions.Submit(ctx, s, model.AnswerMap{qid: {"ok"}, "stale": {"x"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if record.Title != "feedback" || len(record.Answers) != 1 {
		t.Fatalf("unexpected record: %+v", record)
	}

	other := newSurvey(t, "other")
	other, _ = surveys.Save(ctx, other)
	if _, err := submissions.Submit(ctx, other, nil); err != nil {
		t.Fatalf("submit other: %v", err)
	}

	bySurvey, err := submissions.LoadBySurvey(ctx, s.ID)
	if err != nil {
		t.Fatalf("load by survey: %v", err)
	}
	if len(bySurvey) != 1 || bySurvey[0].SubmissionID != record.SubmissionID {
		t.Fatalf("unexpected records: %+v", bySurvey)
	}

	loaded, err := submissions.LoadByID(ctx, record.SubmissionID)
	if err != nil {
		t.Fatalf("load by id: %v", err)
	}
	if loaded.Answers[qid][0] != "ok" {
		t.Fatalf("unexpected answers: %v", loaded.Answers)
	}

	if err := submissions.DeleteByID(ctx, record.SubmissionID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := submissions.LoadByID(ctx, record.SubmissionID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteSurveyKeepsSubmissions(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	surveys := NewSurveyRepo(kv)
	submissions := NewSubmissionRepo(kv)

	s, _ := surveys.Save(ctx, newSurvey(t, "gone", model.MultiChoice))
	record, err := submissions.Submit(ctx, s, model.AnswerMap{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := surveys.DeleteByID(ctx, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	all, err := submissions.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(all) != 1 || all[0].SubmissionID != record.SubmissionID || all[0].Title != "gone" {
		t.Fatalf("submissions changed by survey delete: %+v", all)
	}
	if _, err := surveys.LoadByID(ctx, s.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted survey, got %v", err)
	}
}

func TestTokens(t *testing.T) {
	ctx := context.Background()
	repo := NewTokenRepo(store.NewMemory(), time.Hour)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	if err := repo.Store(ctx, "admin", "t1", "r1"); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := repo.Store(ctx, "admin", "t2", "r2"); err != nil {
		t.Fatalf("store: %v", err)
	}

	if err := repo.Consume(ctx, "admin", "t1", "r1"); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if err := repo.Consume(ctx, "admin", "t1", "r1"); !errors.Is(err, ErrTokenRejected) {
		t.Fatalf("second consume: expected ErrTokenRejected, got %v", err)
	}
	if err := repo.Consume(ctx, "mallory", "t2", "r2"); !errors.Is(err, ErrTokenRejected) {
		t.Fatalf("wrong user: expected ErrTokenRejected, got %v", err)
	}

	now = now.Add(2 * time.Hour)
	if err := repo.Consume(ctx, "admin", "t2", "r2"); !errors.Is(err, ErrTokenRejected) {
		t.Fatalf("expired: expected ErrTokenRejected, got %v", err)
	}
}

func TestTokenSweep(t *testing.T) {
	ctx := context.Background()
	repo := NewTokenRepo(store.NewMemory(), time.Hour)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	_ = repo.Store(ctx, "admin", "old", "r-old")
	now = now.Add(30 * time.Minute)
	_ = repo.Store(ctx, "admin", "new", "r-new")
	now = now.Add(45 * time.Minute)

	removed, err := repo.Sweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if err := repo.Consume(ctx, "admin", "new", "r-new"); err != nil {
		t.Fatalf("fresh token swept: %v", err)
	}
}
