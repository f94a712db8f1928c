package models

import "gorm.io/gorm"

// User represents an account in the system. Profile stats (age, sex,
// height, weight) are optional and only feed the derived BMR/TDEE
// calculation.
type User struct {
	gorm.Model
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Name         string `gorm:"size:255;not null"`
	AvatarURL    *string
	Age          *int
	Sex          *string  `gorm:"size:10"`
	HeightInches *float64 // imperial units throughout, matching the clients
	WeightLbs    *float64
}
