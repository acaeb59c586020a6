package subscriptions

import (
	"context"
	"strings"

	"foodgram-go/internal/domain/errs"
	"foodgram-go/internal/domain/user"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Subscribe adds the edge subscriber -> author. Uniqueness of the edge is
// left to the store so concurrent requests cannot create two of them.
func (s *Service) Subscribe(ctx context.Context, subscriberID, authorID string, recipesLimit int) (*AuthorView, error) {
	subscriberID = strings.TrimSpace(subscriberID)
	authorID = strings.TrimSpace(authorID)
	if subscriberID == "" {
		return nil, errs.Invalid("subscriber", "is required")
	}
	if subscriberID == authorID {
		return nil, ErrSelfSubscription
	}

	author, err := s.repo.GetProfile(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateSubscription(ctx, &Subscription{SubscriberID: subscriberID, AuthorID: authorID}); err != nil {
		return nil, err
	}

	views, err := s.views(ctx, subscriberID, []user.Profile{*author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) Unsubscribe(ctx context.Context, subscriberID, authorID string) error {
	if _, err := s.repo.GetProfile(ctx, authorID); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteSubscription(ctx, subscriberID, authorID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotSubscribed
	}
	return nil
}

func (s *Service) IsSubscribed(ctx context.Context, subscriberID, authorID string) (bool, error) {
	if subscriberID == "" || subscriberID == authorID {
		return false, nil
	}
	found, err := s.repo.SubscribedAmong(ctx, subscriberID, []string{authorID})
	if err != nil {
		return false, err
	}
	return found[authorID], nil
}

func (s *Service) SubscribedAmong(ctx context.Context, subscriberID string, authorIDs []string) (map[string]bool, error) {
	if subscriberID == "" || len(authorIDs) == 0 {
		return map[string]bool{}, nil
	}
	return s.repo.SubscribedAmong(ctx, subscriberID, authorIDs)
}

// ListAuthors returns the authors input.UserID follows.
func (s *Service) ListAuthors(ctx context.Context, input ListInput) ([]AuthorView, int64, error) {
	profiles, total, err := s.repo.ListAuthors(ctx, input.UserID, input.Page)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.views(ctx, input.ViewerID, profiles, input.RecipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// ListFollowers returns the users following input.UserID.
func (s *Service) ListFollowers(ctx context.Context, input ListInput) ([]AuthorView, int64, error) {
	if _, err := s.repo.GetProfile(ctx, input.UserID); err != nil {
		return nil, 0, err
	}
	profiles, total, err := s.repo.ListFollowers(ctx, input.UserID, input.Page)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.views(ctx, input.ViewerID, profiles, input.RecipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (s *Service) views(ctx context.Context, viewerID string, profiles []user.Profile, recipesLimit int) ([]AuthorView, error) {
	if len(profiles) == 0 {
		return []AuthorView{}, nil
	}

	ids := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		ids = append(ids, profile.ID)
	}

	counts, err := s.repo.CountRecipes(ctx, ids)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentRecipes(ctx, ids, recipesLimit)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.SubscribedAmong(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	views := make([]AuthorView, 0, len(profiles))
	for _, profile := range profiles {
		views = append(views, AuthorView{
			Profile:      profile,
			IsSubscribed: subscribed[profile.ID],
			RecipesCount: counts[profile.ID],
			Recipes:      recent[profile.ID],
		})
	}
	return views, nil
}
