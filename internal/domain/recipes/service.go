package recipes

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"foodgram-go/internal/domain/errs"
	"go.uber.org/multierr"
)

const maxAmount = 32767

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateRecipe stores the recipe, its ingredient rows and its tags in one
// transaction. Nothing is written when any part is invalid.
func (s *Service) CreateRecipe(ctx context.Context, input CreateRecipeInput) (*Details, error) {
	if strings.TrimSpace(input.AuthorID) == "" {
		return nil, errs.Invalid("author", "is required")
	}

	var invalid error
	name, err := validateName(input.Name)
	invalid = multierr.Append(invalid, err)
	text, err := validateText(input.Text)
	invalid = multierr.Append(invalid, err)
	invalid = multierr.Append(invalid, validateCookingTime(input.CookingTime))
	items, err := normalizeIngredients(input.Ingredients)
	invalid = multierr.Append(invalid, err)
	tagIDs, err := normalizeTagIDs(input.TagIDs)
	invalid = multierr.Append(invalid, err)
	if invalid != nil {
		return nil, invalid
	}

	recipe := Recipe{
		AuthorID:    input.AuthorID,
		Name:        name,
		Text:        text,
		CookingTime: input.CookingTime,
		Image:       strings.TrimSpace(input.Image),
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := ensureIngredientsExist(ctx, tx, items); err != nil {
			return err
		}
		if err := ensureTagsExist(ctx, tx, tagIDs); err != nil {
			return err
		}
		if err := tx.CreateRecipe(ctx, &recipe); err != nil {
			return err
		}
		if err := tx.ReplaceIngredients(ctx, recipe.ID, items); err != nil {
			return err
		}
		return tx.SetTags(ctx, recipe.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, input.AuthorID, recipe.ID)
}

// UpdateRecipe applies a partial update on behalf of the recipe author.
func (s *Service) UpdateRecipe(ctx context.Context, input UpdateRecipeInput) (*Details, error) {
	var (
		invalid error
		name    string
		text    string
		items   []RecipeIngredient
		tagIDs  []int64
		err     error
	)
	if input.Name != nil {
		name, err = validateName(*input.Name)
		invalid = multierr.Append(invalid, err)
	}
	if input.Text != nil {
		text, err = validateText(*input.Text)
		invalid = multierr.Append(invalid, err)
	}
	if input.CookingTime != nil {
		invalid = multierr.Append(invalid, validateCookingTime(*input.CookingTime))
	}
	if input.Ingredients != nil {
		items, err = normalizeIngredients(*input.Ingredients)
		invalid = multierr.Append(invalid, err)
	}
	if input.TagIDs != nil {
		tagIDs, err = normalizeTagIDs(*input.TagIDs)
		invalid = multierr.Append(invalid, err)
	}
	if invalid != nil {
		return nil, invalid
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		recipe, err := tx.GetRecipe(ctx, input.ID)
		if err != nil {
			return err
		}
		if recipe.AuthorID != input.ActorID {
			return ErrNotAuthor
		}

		if input.Name != nil {
			recipe.Name = name
		}
		if input.Text != nil {
			recipe.Text = text
		}
		if input.CookingTime != nil {
			recipe.CookingTime = *input.CookingTime
		}
		if input.Image != nil {
			recipe.Image = strings.TrimSpace(*input.Image)
		}

		if input.Ingredients != nil {
			if err := ensureIngredientsExist(ctx, tx, items); err != nil {
				return err
			}
			if err := tx.ReplaceIngredients(ctx, recipe.ID, items); err != nil {
				return err
			}
		}
		if input.TagIDs != nil {
			if err := ensureTagsExist(ctx, tx, tagIDs); err != nil {
				return err
			}
			if err := tx.SetTags(ctx, recipe.ID, tagIDs); err != nil {
				return err
			}
		}

		return tx.UpdateRecipe(ctx, recipe)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, input.ActorID, input.ID)
}

func (s *Service) DeleteRecipe(ctx context.Context, actorID string, recipeID int64) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		recipe, err := tx.GetRecipe(ctx, recipeID)
		if err != nil {
			return err
		}
		if recipe.AuthorID != actorID {
			return ErrNotAuthor
		}
		deleted, err := tx.DeleteRecipe(ctx, recipeID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrRecipeNotFound
		}
		return nil
	})
}

// GetRecipe returns the recipe with viewer flags. viewerID may be empty for
// anonymous reads.
func (s *Service) GetRecipe(ctx context.Context, viewerID string, recipeID int64) (*Details, error) {
	recipe, err := s.repo.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	items, err := s.decorate(ctx, viewerID, []Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *Service) ListRecipes(ctx context.Context, viewerID string, filter ListFilter) ([]Details, int64, error) {
	recipes, total, err := s.repo.ListRecipes(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if len(recipes) == 0 {
		return []Details{}, total, nil
	}

	items, err := s.decorate(ctx, viewerID, recipes)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) AddFavorite(ctx context.Context, userID string, recipeID int64) (*Short, error) {
	recipe, err := s.repo.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddFavorite(ctx, &Favorite{UserID: userID, RecipeID: recipeID}); err != nil {
		return nil, err
	}
	short := recipe.Short()
	return &short, nil
}

func (s *Service) RemoveFavorite(ctx context.Context, userID string, recipeID int64) error {
	if _, err := s.repo.GetRecipe(ctx, recipeID); err != nil {
		return err
	}
	removed, err := s.repo.RemoveFavorite(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFavorited
	}
	return nil
}

func (s *Service) AddToCart(ctx context.Context, userID string, recipeID int64) (*Short, error) {
	recipe, err := s.repo.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddCartItem(ctx, &CartItem{UserID: userID, RecipeID: recipeID}); err != nil {
		return nil, err
	}
	short := recipe.Short()
	return &short, nil
}

func (s *Service) RemoveFromCart(ctx context.Context, userID string, recipeID int64) error {
	if _, err := s.repo.GetRecipe(ctx, recipeID); err != nil {
		return err
	}
	removed, err := s.repo.RemoveCartItem(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotInCart
	}
	return nil
}

func (s *Service) decorate(ctx context.Context, viewerID string, recipes []Recipe) ([]Details, error) {
	recipeIDs := make([]int64, 0, len(recipes))
	authorIDs := make([]string, 0, len(recipes))
	seenAuthors := make(map[string]struct{}, len(recipes))
	for _, recipe := range recipes {
		recipeIDs = append(recipeIDs, recipe.ID)
		if _, ok := seenAuthors[recipe.AuthorID]; !ok {
			seenAuthors[recipe.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, recipe.AuthorID)
		}
	}

	lines, err := s.repo.GetIngredientLines(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	tags, err := s.repo.GetTags(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	authors, err := s.repo.GetAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	favorited := map[int64]bool{}
	inCart := map[int64]bool{}
	subscribed := map[string]bool{}
	if viewerID != "" {
		if favorited, err = s.repo.FavoritedAmong(ctx, viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if inCart, err = s.repo.InCartAmong(ctx, viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if subscribed, err = s.repo.SubscribedAmong(ctx, viewerID, authorIDs); err != nil {
			return nil, err
		}
	}

	items := make([]Details, 0, len(recipes))
	for _, recipe := range recipes {
		author := authors[recipe.AuthorID]
		author.ID = recipe.AuthorID
		items = append(items, Details{
			Recipe:           recipe,
			Author:           Author{Profile: author, IsSubscribed: subscribed[recipe.AuthorID]},
			Tags:             tags[recipe.ID],
			Ingredients:      lines[recipe.ID],
			IsFavorited:      favorited[recipe.ID],
			IsInShoppingCart: inCart[recipe.ID],
		})
	}
	return items, nil
}

func validateName(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errs.Invalid("name", "is required")
	}
	if utf8.RuneCountInString(value) > maxNameLen {
		return "", errs.Invalid("name", "must be at most %d characters", maxNameLen)
	}
	return value, nil
}

func validateText(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errs.Invalid("text", "is required")
	}
	return value, nil
}

func validateCookingTime(minutes int) error {
	if minutes < MinCookingTime || minutes > MaxCookingTime {
		return errs.Invalid("cooking_time", "must be between %d and %d minutes", MinCookingTime, MaxCookingTime)
	}
	return nil
}

func normalizeIngredients(items []IngredientAmount) ([]RecipeIngredient, error) {
	if len(items) == 0 {
		return nil, errs.Invalid("ingredients", "at least one ingredient is required")
	}

	var invalid error
	seen := make(map[int64]struct{}, len(items))
	rows := make([]RecipeIngredient, 0, len(items))
	for i, item := range items {
		field := fmt.Sprintf("ingredients[%d]", i)
		if item.IngredientID <= 0 {
			invalid = multierr.Append(invalid, errs.Invalid(field+".id", "is required"))
			continue
		}
		if _, ok := seen[item.IngredientID]; ok {
			invalid = multierr.Append(invalid, errs.Invalid(field+".id", "ingredient %d is listed more than once", item.IngredientID))
			continue
		}
		seen[item.IngredientID] = struct{}{}
		if item.Amount <= 0 || item.Amount > maxAmount {
			invalid = multierr.Append(invalid, errs.Invalid(field+".amount", "must be between 1 and %d", maxAmount))
			continue
		}
		rows = append(rows, RecipeIngredient{IngredientID: item.IngredientID, Amount: item.Amount, Position: i})
	}
	if invalid != nil {
		return nil, invalid
	}
	return rows, nil
}

func normalizeTagIDs(tagIDs []int64) ([]int64, error) {
	var invalid error
	seen := make(map[int64]struct{}, len(tagIDs))
	result := make([]int64, 0, len(tagIDs))
	for i, id := range tagIDs {
		field := fmt.Sprintf("tags[%d]", i)
		if id <= 0 {
			invalid = multierr.Append(invalid, errs.Invalid(field, "tag id %d is invalid", id))
			continue
		}
		if _, ok := seen[id]; ok {
			invalid = multierr.Append(invalid, errs.Invalid(field, "tag %d is listed more than once", id))
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	if invalid != nil {
		return nil, invalid
	}
	return result, nil
}

func ensureIngredientsExist(ctx context.Context, tx Repository, items []RecipeIngredient) error {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.IngredientID)
	}
	count, err := tx.CountIngredientsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return errs.Invalid("ingredients", "unknown ingredient")
	}
	return nil
}

func ensureTagsExist(ctx context.Context, tx Repository, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	count, err := tx.CountTagsByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}
	if count != int64(len(tagIDs)) {
		return errs.Invalid("tags", "unknown tag")
	}
	return nil
}
