package shopping

// Line is one ingredient row of one recipe in a user's cart.
type Line struct {
	RecipeID        int64  `gorm:"column:recipe_id"`
	IngredientID    int64  `gorm:"column:ingredient_id"`
	Name            string `gorm:"column:name"`
	MeasurementUnit string `gorm:"column:measurement_unit"`
	Amount          int    `gorm:"column:amount"`
}

// Item is an aggregated shopping list entry.
type Item struct {
	Name            string
	MeasurementUnit string
	TotalAmount     int64
}

type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}
