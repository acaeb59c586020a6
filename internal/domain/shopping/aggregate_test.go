package shopping

import (
	"reflect"
	"testing"
)

func TestAggregateSumsPerNameAndUnit(t *testing.T) {
	lines := []Line{
		{RecipeID: 1, IngredientID: 10, Name: "sugar", MeasurementUnit: "g", Amount: 100},
		{RecipeID: 1, IngredientID: 11, Name: "milk", MeasurementUnit: "ml", Amount: 200},
		{RecipeID: 2, IngredientID: 10, Name: "sugar", MeasurementUnit: "g", Amount: 50},
		{RecipeID: 2, IngredientID: 12, Name: "sugar", MeasurementUnit: "tbsp", Amount: 2},
		{RecipeID: 3, IngredientID: 11, Name: "milk", MeasurementUnit: "ml", Amount: 1},
	}

	got := Aggregate(lines)
	want := []Item{
		{Name: "milk", MeasurementUnit: "ml", TotalAmount: 201},
		{Name: "sugar", MeasurementUnit: "g", TotalAmount: 150},
		{Name: "sugar", MeasurementUnit: "tbsp", TotalAmount: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	lines := []Line{
		{Name: "b", MeasurementUnit: "g", Amount: 1},
		{Name: "a", MeasurementUnit: "g", Amount: 2},
		{Name: "b", MeasurementUnit: "g", Amount: 3},
	}
	reversed := []Line{lines[2], lines[1], lines[0]}

	if !reflect.DeepEqual(Aggregate(lines), Aggregate(reversed)) {
		t.Fatalf("expected the same result regardless of input order")
	}
}

func TestAggregateEmpty(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}
