package models

import "time"

// Product is a single entry on the shopping list.
// CategoryID is cleared, not cascaded, when its category is deleted.
type Product struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	DateAdded  time.Time `json:"date_added" gorm:"not null;index"`
	Quantity   int       `json:"quantity" gorm:"not null" validate:"gte=0"`
	Unit       string    `json:"unit" gorm:"type:varchar(32)" validate:"max=32"`
	CategoryID *uint     `json:"category_id" gorm:"index"`
	Category   *Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Notes      *string   `json:"notes,omitempty" validate:"omitempty,max=500"`
}

func (p *Product) TableName() string {
	return "products"
}
