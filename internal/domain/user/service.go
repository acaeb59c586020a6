package user

import (
	"context"
	"strings"

	"foodgram-go/internal/domain/errs"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpsertProfile records the latest claims of a principal. Empty claims never
// overwrite previously stored values.
func (s *Service) UpsertProfile(ctx context.Context, profile Profile) error {
	profile.ID = strings.TrimSpace(profile.ID)
	if profile.ID == "" {
		return errs.Invalid("id", "is required")
	}

	profile.Email = strings.TrimSpace(profile.Email)
	profile.Username = strings.TrimSpace(profile.Username)
	profile.FirstName = strings.TrimSpace(profile.FirstName)
	profile.LastName = strings.TrimSpace(profile.LastName)

	return s.repo.UpsertProfile(ctx, &profile)
}

func (s *Service) GetProfile(ctx context.Context, id string) (*Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

func (s *Service) ListProfiles(ctx context.Context, page Page) ([]Profile, int64, error) {
	return s.repo.ListProfiles(ctx, page)
}
