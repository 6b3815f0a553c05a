package model

import "github.com/shopspring/decimal"

// OptionGroup describes the single variant choice some menu items offer,
// e.g. sambal: matah | bawang.
type OptionGroup struct {
	Type    string            `json:"type" yaml:"type"`
	Options []string          `json:"options" yaml:"options"`
	Labels  map[string]string `json:"labels,omitempty" yaml:"labels"`
}

// Has reports whether value is one of the group's choices.
func (g *OptionGroup) Has(value string) bool {
	for _, o := range g.Options {
		if o == value {
			return true
		}
	}
	return false
}

type MenuItem struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category    string          `gorm:"type:varchar(100);not null;index" json:"category" validate:"required"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	ImageURL    string          `gorm:"type:varchar(255)" json:"image_url"`
	Description string          `gorm:"type:text" json:"description"`
	Options     *OptionGroup    `gorm:"type:text;serializer:json" json:"options,omitempty"`
}

// MenuItemView is a menu entry joined with today's stock.
type MenuItemView struct {
	MenuItem
	Stock     int  `json:"stock"`
	IsSoldOut bool `json:"is_sold_out"`
}
