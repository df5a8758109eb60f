package models

// Category groups products on the shopping list.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
}

func (c *Category) TableName() string {
	return "categories"
}
