package store_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/eduquiz/backend/internal/domain/lesson"
	"github.com/eduquiz/backend/internal/domain/quiz"
	"github.com/eduquiz/backend/internal/store"
)

func newTestStore(t *testing.T) *store.SQLStore {
	t.Helper()
	db, err := store.Open(context.Background(), store.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s := store.NewSQLStore(db, store.DriverSQLite)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleLessons() []*lesson.Lesson {
	return []*lesson.Lesson{
		{
			ID:      "l1",
			Title:   "Intro",
			Content: "<p>Hello</p>",
			Quiz: &quiz.Quiz{
				Title: "Check",
				Questions: []quiz.Question{
					{ID: "q1", Type: quiz.Single, Text: "Pick one", Options: []quiz.Option{
						{ID: "o1", Text: "A"},
						{ID: "o2", Text: "B", Correct: true},
					}},
					{ID: "q2", Type: quiz.Multiple, Text: "Pick many", Options: []quiz.Option{
						{ID: "o1", Text: "C", Correct: true},
						{ID: "o2", Text: "D", Correct: true},
						{ID: "o3", Text: "E"},
					}},
				},
			},
		},
		{ID: "l2", Title: "No quiz", Content: "<p>Plain</p>"},
		{ID: "l3", Title: "Empty quiz", Content: "", Quiz: &quiz.Quiz{Title: "", Questions: []quiz.Question{}}},
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := store.Open(context.Background(), store.Driver("mysql"), "")
	if err == nil || !strings.Contains(err.Error(), "unsupported driver") {
		t.Errorf("expected unsupported driver error, got %v", err)
	}
}

func TestLoadLessons_Empty(t *testing.T) {
	s := newTestStore(t)

	lessons, err := s.LoadLessons(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lessons) != 0 {
		t.Errorf("expected no lessons, got %d", len(lessons))
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	want := sampleLessons()

	if err := s.SaveLessons(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadLessons(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch\nwant: %+v\ngot:  %+v", want, got)
	}
}

func TestSaveLessons_ReplacesPreviousSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveLessons(ctx, sampleLessons()); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := []*lesson.Lesson{{ID: "l9", Title: "Only", Content: "<p>x</p>"}}
	if err := s.SaveLessons(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadLessons(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Errorf("expected only the second snapshot, got %+v", got)
	}
}

func TestSaveLessons_FailureKeepsPreviousSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveLessons(ctx, sampleLessons()); err != nil {
		t.Fatalf("save: %v", err)
	}

	dup := []*lesson.Lesson{
		{ID: "same", Title: "a"},
		{ID: "same", Title: "b"},
	}
	if err := s.SaveLessons(ctx, dup); err == nil {
		t.Fatal("expected duplicate lesson ids to fail")
	}

	got, err := s.LoadLessons(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 3 || got[0].ID != "l1" {
		t.Errorf("expected the previous snapshot to survive, got %+v", got)
	}
}

func TestLoadLessons_KeepsOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lessons := []*lesson.Lesson{
		{ID: "z", Title: "first"},
		{ID: "a", Title: "second"},
		{ID: "m", Title: "third"},
	}
	if err := s.SaveLessons(ctx, lessons); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadLessons(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var ids []string
	for _, l := range got {
		ids = append(ids, l.ID)
	}
	if !reflect.DeepEqual(ids, []string{"z", "a", "m"}) {
		t.Errorf("expected saved order, got %v", ids)
	}
}
