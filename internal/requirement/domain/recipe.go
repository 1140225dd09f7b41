package domain

import (
	catalogdomain "github.com/buestan/buestanflow/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// RecipeLine describes one supply needed to build a unit of product, plus the
// defaults used when the supply has to be auto-provisioned.
type RecipeLine struct {
	Name         string
	Unit         string
	PerUnit      decimal.Decimal
	DefaultStock decimal.Decimal
	MinStock     decimal.Decimal
}

// BaseRecipe applies to every order regardless of product category.
var BaseRecipe = []RecipeLine{
	{
		Name:         "Cuero Base",
		Unit:         "m2",
		PerUnit:      decimal.RequireFromString("0.08"),
		DefaultStock: decimal.NewFromInt(50),
		MinStock:     decimal.NewFromInt(10),
	},
	{
		Name:         "Plantilla Estándar",
		Unit:         "unidad",
		PerUnit:      decimal.NewFromInt(1),
		DefaultStock: decimal.NewFromInt(300),
		MinStock:     decimal.NewFromInt(50),
	},
	{
		Name:         "Suela Básica",
		Unit:         "unidad",
		PerUnit:      decimal.NewFromInt(1),
		DefaultStock: decimal.NewFromInt(200),
		MinStock:     decimal.NewFromInt(40),
	},
}

// CategoryRecipe lists the supplies added on top of BaseRecipe per product
// category.
var CategoryRecipe = map[catalogdomain.Category][]RecipeLine{
	catalogdomain.CategoryZapato: {
		{
			Name:         "Cordones",
			Unit:         "par",
			PerUnit:      decimal.NewFromInt(2),
			DefaultStock: decimal.NewFromInt(400),
			MinStock:     decimal.NewFromInt(80),
		},
	},
	catalogdomain.CategoryBotin: {
		{
			Name:         "Forro Interno",
			Unit:         "unidad",
			PerUnit:      decimal.NewFromInt(1),
			DefaultStock: decimal.NewFromInt(150),
			MinStock:     decimal.NewFromInt(30),
		},
	},
	catalogdomain.CategorySandalia: {
		{
			Name:         "Correa Ajustable",
			Unit:         "unidad",
			PerUnit:      decimal.NewFromInt(2),
			DefaultStock: decimal.NewFromInt(200),
			MinStock:     decimal.NewFromInt(40),
		},
	},
}

// RecipeFor returns the full list of recipe lines for a category, base lines
// first.
func RecipeFor(category catalogdomain.Category) []RecipeLine {
	lines := make([]RecipeLine, 0, len(BaseRecipe)+2)
	lines = append(lines, BaseRecipe...)
	lines = append(lines, CategoryRecipe[category]...)
	return lines
}
