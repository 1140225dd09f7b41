package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Category classifies a product for requirement resolution.
type Category string

const (
	CategoryZapato   Category = "zapato"
	CategoryBotin    Category = "botin"
	CategorySandalia Category = "sandalia"
)

// CategoryFromName infers the product category from its commercial name,
// mirroring how the factory historically labeled products. Unknown names
// default to zapato.
func CategoryFromName(name string) Category {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "zapato"):
		return CategoryZapato
	case strings.Contains(lower, "botin"), strings.Contains(lower, "botín"):
		return CategoryBotin
	case strings.Contains(lower, "sandalia"):
		return CategorySandalia
	default:
		return CategoryZapato
	}
}

type Product struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null;uniqueIndex" json:"name"`
	Category    Category        `gorm:"not null" json:"category"`
	BasePrice   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"base_price"`
	Description string          `json:"description,omitempty"`
	Active      bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

type Client struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null;uniqueIndex" json:"name"`
	Email     string       `json:"email,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Active    bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

var (
	ErrProductNotFound = errors.New("product_not_found")
	ErrInvalidProduct  = errors.New("invalid_product")
	ErrInvalidClient   = errors.New("invalid_client")
)
