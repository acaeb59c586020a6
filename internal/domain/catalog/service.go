package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"foodgram-go/internal/domain/errs"
	"github.com/gosimple/slug"
	"go.uber.org/multierr"
)

const (
	maxNameLen = 64
	maxUnitLen = 16
	maxSlugLen = 64
)

var tagColorRegex = regexp.MustCompile(`^#[0-9A-F]{6}$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListIngredients(ctx context.Context, name string) ([]Ingredient, error) {
	return s.repo.ListIngredients(ctx, strings.TrimSpace(name))
}

func (s *Service) GetIngredient(ctx context.Context, id int64) (*Ingredient, error) {
	return s.repo.GetIngredient(ctx, id)
}

func (s *Service) CreateIngredient(ctx context.Context, input IngredientInput) (*Ingredient, error) {
	ingredient, err := normalizeIngredient(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateIngredient(ctx, &ingredient); err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// ImportIngredients seeds the catalog. Rows already present are skipped.
// Invalid rows are collected into the returned error while the valid ones
// are still stored, so the result is meaningful even when err != nil.
func (s *Service) ImportIngredients(ctx context.Context, inputs []IngredientInput) (ImportResult, error) {
	var (
		result  ImportResult
		invalid error
		rows    = make([]Ingredient, 0, len(inputs))
		seen    = make(map[[2]string]struct{}, len(inputs))
	)

	for i, input := range inputs {
		ingredient, err := normalizeIngredient(input)
		if err != nil {
			result.Invalid++
			invalid = multierr.Append(invalid, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		key := [2]string{ingredient.Name, ingredient.MeasurementUnit}
		if _, ok := seen[key]; ok {
			result.Skipped++
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, ingredient)
	}

	if len(rows) > 0 {
		err := s.repo.Transaction(ctx, func(tx Repository) error {
			created, err := tx.InsertIngredientsIgnoringExisting(ctx, rows)
			if err != nil {
				return err
			}
			result.Created = created
			return nil
		})
		if err != nil {
			return ImportResult{Invalid: result.Invalid}, multierr.Append(invalid, err)
		}
		result.Skipped += len(rows) - result.Created
	}

	return result, invalid
}

func (s *Service) ListTags(ctx context.Context) ([]Tag, error) {
	return s.repo.ListTags(ctx)
}

func (s *Service) GetTag(ctx context.Context, id int64) (*Tag, error) {
	return s.repo.GetTag(ctx, id)
}

func (s *Service) CreateTag(ctx context.Context, input CreateTagInput) (*Tag, error) {
	name, err := validateName("name", input.Name, maxNameLen)
	if err != nil {
		return nil, err
	}
	color, err := normalizeColor(input.Color)
	if err != nil {
		return nil, err
	}
	tagSlug, err := normalizeSlug(input.Slug, name)
	if err != nil {
		return nil, err
	}

	tag := Tag{Name: name, Color: color, Slug: tagSlug}
	if err := s.repo.CreateTag(ctx, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *Service) UpdateTag(ctx context.Context, input UpdateTagInput) (*Tag, error) {
	var updated *Tag
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		tag, err := tx.GetTag(ctx, input.ID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			name, err := validateName("name", *input.Name, maxNameLen)
			if err != nil {
				return err
			}
			tag.Name = name
		}
		if input.Color != nil {
			color, err := normalizeColor(*input.Color)
			if err != nil {
				return err
			}
			tag.Color = color
		}
		if input.Slug != nil {
			tagSlug, err := normalizeSlug(*input.Slug, tag.Name)
			if err != nil {
				return err
			}
			tag.Slug = tagSlug
		}

		if err := tx.UpdateTag(ctx, tag); err != nil {
			return err
		}
		updated = tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) DeleteTag(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteTag(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTagNotFound
	}
	return nil
}

func normalizeIngredient(input IngredientInput) (Ingredient, error) {
	name, err := validateName("name", input.Name, maxNameLen)
	if err != nil {
		return Ingredient{}, err
	}
	unit, err := validateName("measurement_unit", input.MeasurementUnit, maxUnitLen)
	if err != nil {
		return Ingredient{}, err
	}
	return Ingredient{Name: name, MeasurementUnit: unit}, nil
}

func validateName(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errs.Invalid(field, "is required")
	}
	if utf8.RuneCountInString(value) > maxLen {
		return "", errs.Invalid(field, "must be at most %d characters", maxLen)
	}
	return value, nil
}

func normalizeColor(value string) (string, error) {
	color := strings.ToUpper(strings.TrimSpace(value))
	if !tagColorRegex.MatchString(color) {
		return "", errs.Invalid("color", "must be a hex color like #E26C2D")
	}
	return color, nil
}

// normalizeSlug validates an explicit slug or derives one from the tag name.
func normalizeSlug(value, name string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = slug.Make(name)
		if len(value) > maxSlugLen {
			value = strings.Trim(value[:maxSlugLen], "-")
		}
		if value == "" {
			return "", errs.Invalid("slug", "cannot be derived from name")
		}
		return value, nil
	}
	if len(value) > maxSlugLen {
		return "", errs.Invalid("slug", "must be at most %d characters", maxSlugLen)
	}
	if !slug.IsSlug(value) {
		return "", errs.Invalid("slug", "must contain only lowercase letters, digits and dashes")
	}
	return value, nil
}
