package models

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	MRP              decimal.Decimal `gorm:"type:decimal(12,2)" json:"mrp"`
	SellingPrice     decimal.Decimal `gorm:"type:decimal(12,2)" json:"sellingPrice"`
	Category         string          `json:"category"`
	Brand            string          `json:"brand"`
	Image            string          `json:"image"`
	Images           []string        `gorm:"serializer:json" json:"images"`
	Stock            int             `json:"stock"`
	ExchangeEligible bool            `json:"exchangeEligible"`
	Published        bool            `json:"published"`
	Rating           float64         `json:"rating"`
	NumReviews       int             `json:"numReviews"`
	Featured         bool            `json:"featured"`
}
