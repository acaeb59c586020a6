package catalog

type Ingredient struct {
	ID              int64  `gorm:"primaryKey"`
	Name            string `gorm:"size:64;not null;uniqueIndex:ingredients_name_unit_key"`
	MeasurementUnit string `gorm:"size:16;not null;uniqueIndex:ingredients_name_unit_key"`
}

type Tag struct {
	ID    int64  `gorm:"primaryKey"`
	Name  string `gorm:"size:64;not null;uniqueIndex"`
	Color string `gorm:"size:7;not null;uniqueIndex"`
	Slug  string `gorm:"size:64;not null;uniqueIndex"`
}

type IngredientInput struct {
	Name            string
	MeasurementUnit string
}

type ImportResult struct {
	Created int
	Skipped int
	Invalid int
}

type CreateTagInput struct {
	Name  string
	Color string
	Slug  string
}

type UpdateTagInput struct {
	ID    int64
	Name  *string
	Color *string
	Slug  *string
}
