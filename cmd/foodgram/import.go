package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"foodgram-go/internal/app"
	catalogdomain "foodgram-go/internal/domain/catalog"
	"go.uber.org/multierr"
)

// ImportIngredientsCmd reads the seed format [{"name": "...", "measurement_unit": "..."}].
type ImportIngredientsCmd struct {
	File string `required:"" type:"existingfile" short:"f" help:"Path to the ingredients JSON file."`
}

type ingredientSeed struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func (i *ImportIngredientsCmd) Run(c *Context) error {
	inputs, err := readIngredientSeed(i.File)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	application, err := app.New(cfg, c.Log)
	if err != nil {
		return err
	}
	defer application.Close()

	result, err := application.Catalog.ImportIngredients(context.Background(), inputs)
	for _, rowErr := range multierr.Errors(err) {
		c.Log.Warn("import: row rejected", "err", rowErr)
	}
	c.Log.Info("import: finished",
		"file", i.File,
		"created", result.Created,
		"skipped", result.Skipped,
		"invalid", result.Invalid,
	)
	return err
}

func readIngredientSeed(path string) ([]catalogdomain.IngredientInput, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var seeds []ingredientSeed
	if err := json.Unmarshal(contents, &seeds); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	inputs := make([]catalogdomain.IngredientInput, 0, len(seeds))
	for _, seed := range seeds {
		inputs = append(inputs, catalogdomain.IngredientInput{Name: seed.Name, MeasurementUnit: seed.MeasurementUnit})
	}
	return inputs, nil
}
