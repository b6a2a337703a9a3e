package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmergencyContact struct {
	FullName     string `json:"fullName" bson:"fullName"`
	MobileNumber string `json:"mobileNumber" bson:"mobileNumber"`
	Relation     string `json:"relation" bson:"relation"`
}

type FamilyMember struct {
	ID         string `json:"id" bson:"id"`
	Name       string `json:"name" bson:"name"`
	NationalID string `json:"nationalId" bson:"nationalId"`
	Age        int    `json:"age" bson:"age"`
	Gender     string `json:"gender" bson:"gender"`
	Relation   string `json:"relation" bson:"relation"`
}

type Patient struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID           primitive.ObjectID `json:"userID" bson:"userID"`
	Name             string             `json:"name" bson:"name"`
	Email            string             `json:"email" bson:"email"`
	MobileNumber     string             `json:"mobileNumber" bson:"mobileNumber"`
	DateOfBirth      time.Time          `json:"dateOfBirth" bson:"dateOfBirth"`
	Gender           string             `json:"gender" bson:"gender"`
	EmergencyContact EmergencyContact   `json:"emergencyContact" bson:"emergencyContact"`
	WalletMoney      float64            `json:"walletMoney" bson:"walletMoney"`
	Notes            []string           `json:"notes" bson:"notes"`
	FamilyMembers    []FamilyMember     `json:"familyMembers" bson:"familyMembers"`
	HealthPackageID  string             `json:"healthPackageId,omitempty" bson:"healthPackageId,omitempty"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}
