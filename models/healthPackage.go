package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Discounts are percentages in [0, 100].
type HealthPackage struct {
	ID                         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name                       string             `json:"name" bson:"name"`
	PricePerYear               float64            `json:"pricePerYear" bson:"pricePerYear"`
	SessionDiscount            float64            `json:"sessionDiscount" bson:"sessionDiscount"`
	MedicineDiscount           float64            `json:"medicineDiscount" bson:"medicineDiscount"`
	FamilySubscriptionDiscount float64            `json:"familySubscriptionDiscount" bson:"familySubscriptionDiscount"`
	CreatedAt                  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt                  time.Time          `json:"updatedAt" bson:"updatedAt"`
}
