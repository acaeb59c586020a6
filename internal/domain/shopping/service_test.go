package shopping

import (
	"context"
	"errors"
	"testing"

	"foodgram-go/internal/domain/errs"
)

type fakeShoppingRepo struct {
	lines map[string][]Line
	err   error
}

func (r *fakeShoppingRepo) ListCartLines(ctx context.Context, userID string) ([]Line, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.lines[userID], nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	renderer, err := NewRenderer("")
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	return NewService(repo, renderer, "")
}

func TestDownloadAggregatesCart(t *testing.T) {
	repo := &fakeShoppingRepo{lines: map[string][]Line{
		"alice": {
			{RecipeID: 1, Name: "flour", MeasurementUnit: "g", Amount: 200},
			{RecipeID: 2, Name: "flour", MeasurementUnit: "g", Amount: 300},
			{RecipeID: 2, Name: "butter", MeasurementUnit: "g", Amount: 50},
		},
		"bob": {
			{RecipeID: 3, Name: "flour", MeasurementUnit: "g", Amount: 999},
		},
	}}
	svc := newTestService(t, repo)

	doc, err := svc.Download(context.Background(), "alice")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if doc.Filename != "shopping_list.txt" || doc.ContentType != ContentType {
		t.Fatalf("unexpected document metadata %+v", doc)
	}
	want := "butter (g) — 50\nflour (g) — 500"
	if string(doc.Body) != want {
		t.Fatalf("expected %q, got %q", want, string(doc.Body))
	}
}

func TestDownloadEmptyCart(t *testing.T) {
	svc := newTestService(t, &fakeShoppingRepo{})

	doc, err := svc.Download(context.Background(), "alice")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(doc.Body) != 0 {
		t.Fatalf("expected empty body, got %q", string(doc.Body))
	}
}

func TestShoppingListRequiresUser(t *testing.T) {
	svc := newTestService(t, &fakeShoppingRepo{})

	if _, err := svc.ShoppingList(context.Background(), ""); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestShoppingListPropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection reset")
	svc := newTestService(t, &fakeShoppingRepo{err: storeErr})

	if _, err := svc.Download(context.Background(), "alice"); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}
