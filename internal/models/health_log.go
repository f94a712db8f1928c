package models

import (
	"time"

	"gorm.io/gorm"
)

// HealthLog holds one user's metrics for one calendar day. The (user, date)
// pair is unique; saving again for the same day updates only the fields
// provided. All metrics are optional so partial days are representable.
// Deletion is a hard delete: a soft-deleted row would keep occupying the
// unique (user, date) slot and make the day unloggable, so there is no
// DeletedAt column.
//
// Handlers serialize this model directly, hence the json tags.
type HealthLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_health_user_date" json:"user_id"`
	LogDate     string    `gorm:"size:10;not null;uniqueIndex:idx_health_user_date" json:"log_date"` // YYYY-MM-DD
	Weight      *float64  `json:"weight"`
	Calories    *int      `json:"calories"`
	Protein     *int      `json:"protein"`
	Carbs       *int      `json:"carbs"`
	Fat         *int      `json:"fat"`
	SleepHours  *float64  `json:"sleep_hours"`
	EnergyLevel *int      `json:"energy_level"` // 1-10
	Steps       *int      `json:"steps"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// ProgressPic is a private before/after photo, not shared to the feed.
type ProgressPic struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	ImageURL  string         `gorm:"size:512;not null" json:"image_url"`
	Label     *string        `json:"label"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
