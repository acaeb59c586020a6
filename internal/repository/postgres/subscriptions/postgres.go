package subscriptions

import (
	"context"
	"errors"

	recipesdomain "foodgram-go/internal/domain/recipes"
	subscriptionsdomain "foodgram-go/internal/domain/subscriptions"
	userdomain "foodgram-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetProfile(ctx context.Context, id string) (*userdomain.Profile, error) {
	var profile userdomain.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresRepository) CreateSubscription(ctx context.Context, subscription *subscriptionsdomain.Subscription) error {
	err := r.db.WithContext(ctx).Create(subscription).Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return subscriptionsdomain.ErrAlreadySubscribed
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return subscriptionsdomain.ErrSelfSubscription
	}
	return err
}

func (r *PostgresRepository) DeleteSubscription(ctx context.Context, subscriberID, authorID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&subscriptionsdomain.Subscription{}, "subscriber_id = ? AND author_id = ?", subscriberID, authorID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) SubscribedAmong(ctx context.Context, subscriberID string, authorIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(authorIDs))
	if subscriberID == "" || len(authorIDs) == 0 {
		return result, nil
	}

	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&subscriptionsdomain.Subscription{}).
		Where("subscriber_id = ? AND author_id IN ?", subscriberID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// ListAuthors returns the users subscriberID follows, newest subscription first.
func (r *PostgresRepository) ListAuthors(ctx context.Context, subscriberID string, page userdomain.Page) ([]userdomain.Profile, int64, error) {
	return r.listEdges(ctx, "s.author_id", "s.subscriber_id", subscriberID, page)
}

// ListFollowers returns the users following authorID, newest subscription first.
func (r *PostgresRepository) ListFollowers(ctx context.Context, authorID string, page userdomain.Page) ([]userdomain.Profile, int64, error) {
	return r.listEdges(ctx, "s.subscriber_id", "s.author_id", authorID, page)
}

func (r *PostgresRepository) listEdges(ctx context.Context, joinColumn, filterColumn, userID string, page userdomain.Page) ([]userdomain.Profile, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&userdomain.Profile{}).
		Joins("JOIN subscriptions s ON "+joinColumn+" = user_profiles.id").
		Where(filterColumn+" = ?", userID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("s.created_at desc, user_profiles.id")
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}
	if page.Offset > 0 {
		query = query.Offset(page.Offset)
	}

	var profiles []userdomain.Profile
	if err := query.Select("user_profiles.*").Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *PostgresRepository) CountRecipes(ctx context.Context, authorIDs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		AuthorID string `gorm:"column:author_id"`
		Total    int64  `gorm:"column:total"`
	}
	if err := r.db.WithContext(ctx).
		Model(&recipesdomain.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.AuthorID] = row.Total
	}
	return result, nil
}

// RecentRecipes ranks each author's recipes by age in one query.
func (r *PostgresRepository) RecentRecipes(ctx context.Context, authorIDs []string, perAuthor int) (map[string][]recipesdomain.Short, error) {
	result := make(map[string][]recipesdomain.Short, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	ranked := r.db.WithContext(ctx).
		Model(&recipesdomain.Recipe{}).
		Select("id, author_id, name, image, cooking_time, created_at, " +
			"ROW_NUMBER() OVER (PARTITION BY author_id ORDER BY created_at DESC, id DESC) AS rn").
		Where("author_id IN ?", authorIDs)

	query := r.db.WithContext(ctx).
		Table("(?) AS ranked", ranked).
		Select("id, author_id, name, image, cooking_time")
	if perAuthor > 0 {
		query = query.Where("rn <= ?", perAuthor)
	}

	var rows []recipesdomain.Short
	if err := query.Order("author_id, rn").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.AuthorID] = append(result[row.AuthorID], row)
	}
	return result, nil
}
