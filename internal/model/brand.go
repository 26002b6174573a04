package model

// Brand is a product brand. Brands in the offer program are eligible for
// expiry discounts.
type Brand struct {
	BaseModel
	Name           string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required,max=255"`
	InOfferProgram bool   `gorm:"default:false" json:"in_offer_program"`
}
