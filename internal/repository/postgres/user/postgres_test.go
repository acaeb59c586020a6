package user

import (
	"context"
	"testing"

	domain "foodgram-go/internal/domain/user"
	"foodgram-go/internal/repository/postgres/testdb"
	"github.com/stretchr/testify/suite"
)

type ProfileRepositorySuite struct {
	suite.Suite
	repo *PostgresRepository
	ctx  context.Context
}

func TestProfileRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositorySuite))
}

func (s *ProfileRepositorySuite) SetupTest() {
	s.repo = NewPostgres(testdb.New(s.T()))
	s.ctx = context.Background()
}

func (s *ProfileRepositorySuite) TestUpsertProfileKeepsStoredClaims() {
	s.Require().NoError(s.repo.UpsertProfile(s.ctx, &domain.Profile{ID: "u1", Email: "a@example.com", Username: "ann", FirstName: "Ann"}))
	s.Require().NoError(s.repo.UpsertProfile(s.ctx, &domain.Profile{ID: "u1", Username: "annie"}))

	profile, err := s.repo.GetProfile(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("annie", profile.Username)
	s.Equal("a@example.com", profile.Email)
	s.Equal("Ann", profile.FirstName)
}

func (s *ProfileRepositorySuite) TestGetProfileMissing() {
	_, err := s.repo.GetProfile(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrUserNotFound)
}

func (s *ProfileRepositorySuite) TestListProfilesPaged() {
	for _, name := range []string{"carol", "alice", "bob"} {
		s.Require().NoError(s.repo.UpsertProfile(s.ctx, &domain.Profile{ID: "id-" + name, Username: name}))
	}

	profiles, total, err := s.repo.ListProfiles(s.ctx, domain.Page{Limit: 2, Offset: 1})
	s.Require().NoError(err)
	s.EqualValues(3, total)
	s.Require().Len(profiles, 2)
	s.Equal("bob", profiles[0].Username)
	s.Equal("carol", profiles[1].Username)
}
