package models

// User represents a user of the shopping list.
type User struct {
	ID        uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName string `json:"first_name" gorm:"type:varchar(100)" validate:"required,max=100"`
	LastName  string `json:"last_name" gorm:"type:varchar(100)" validate:"required,max=100"`
	Email     string `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
}

func (u *User) TableName() string {
	return "users"
}
