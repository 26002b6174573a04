package model

import (
	"time"

	"github.com/google/uuid"
)

// UserProduct is one inventory row owned by a user: a quantity of a code
// with an expiry date.
type UserProduct struct {
	BaseModel
	Code       string     `gorm:"type:varchar(32);index;not null" json:"code" validate:"required,barcode"`
	Name       string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Brand      string     `gorm:"type:varchar(255)" json:"brand"`
	Category   string     `gorm:"type:varchar(255)" json:"category"`
	ExpiryDate *time.Time `gorm:"index" json:"expiry_date"`
	Quantity   int        `gorm:"not null;default:0" json:"quantity" validate:"min=0"`
	TakenOut   bool       `gorm:"default:false" json:"taken_out"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id" validate:"uuid_required"`
}

// TableName keeps the table name used by the panel
func (UserProduct) TableName() string {
	return "users_products"
}

// DaysUntilExpiry returns whole calendar days from now until the expiry
// date; negative once expired. ok is false when no date is set.
func (p *UserProduct) DaysUntilExpiry(now time.Time) (days int, ok bool) {
	if p.ExpiryDate == nil {
		return 0, false
	}
	exp := p.ExpiryDate.UTC()
	n := now.UTC()
	expDay := time.Date(exp.Year(), exp.Month(), exp.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	return int(expDay.Sub(today).Hours() / 24), true
}
