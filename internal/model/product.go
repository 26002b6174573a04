package model

// Product is a catalog entry keyed by barcode. It holds what is known about
// a code independently of any stock on hand, and is used to autofill scans.
type Product struct {
	BaseModel
	Code     string `gorm:"type:varchar(32);uniqueIndex;not null" json:"code" validate:"required,barcode"`
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Brand    string `gorm:"type:varchar(255)" json:"brand"`
	Category string `gorm:"type:varchar(255)" json:"category"`
}
