package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Member is one enrolled person on a lodge's roster.
//
// The three date fields are stored as text: join_date may be a legacy ISO
// timestamp, the masonic dates are "YYYY-MM-DD". Billing anchors on the
// most recent re-enrollment, falling back to the masonic join date and then
// the app join date.
type Member struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	LodgeID         snowflake.ID `gorm:"column:lodge_id;not null;index" json:"lodge_id"`
	Name            string       `gorm:"type:text;not null" json:"name"`
	Email           string       `gorm:"type:text;not null" json:"email"`
	Active          bool         `gorm:"not null;default:false" json:"active"`
	LodgeRole       string       `gorm:"column:lodge_role;type:text" json:"lodge_role"`
	JoinDate        string       `gorm:"column:join_date;type:text;not null" json:"join_date"`
	MasonicJoinDate string       `gorm:"column:masonic_join_date;type:text" json:"masonic_join_date"`
	RejoinDate      string       `gorm:"column:rejoin_date;type:text" json:"rejoin_date"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Member) TableName() string { return "members" }
