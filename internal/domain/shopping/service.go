package shopping

import (
	"context"

	"foodgram-go/internal/domain/errs"
)

const (
	DefaultFilename = "shopping_list.txt"
	ContentType     = "text/plain; charset=utf-8"
)

type Service struct {
	repo     Repository
	renderer *Renderer
	filename string
}

func NewService(repo Repository, renderer *Renderer, filename string) *Service {
	if filename == "" {
		filename = DefaultFilename
	}
	return &Service{repo: repo, renderer: renderer, filename: filename}
}

// ShoppingList aggregates the ingredients of every recipe in the user's cart.
func (s *Service) ShoppingList(ctx context.Context, userID string) ([]Item, error) {
	if userID == "" {
		return nil, errs.Invalid("user", "is required")
	}
	lines, err := s.repo.ListCartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Aggregate(lines), nil
}

// Download renders the shopping list as a text attachment. An empty cart
// yields an empty body.
func (s *Service) Download(ctx context.Context, userID string) (Document, error) {
	items, err := s.ShoppingList(ctx, userID)
	if err != nil {
		return Document{}, err
	}
	body, err := s.renderer.Render(items)
	if err != nil {
		return Document{}, err
	}
	return Document{Filename: s.filename, ContentType: ContentType, Body: body}, nil
}
