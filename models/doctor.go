package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UploadedDocument is the metadata of a credential file submitted with a
// doctor registration request.
type UploadedDocument struct {
	ID       string `json:"id" bson:"id"`
	Filename string `json:"filename" bson:"filename"`
	Size     int64  `json:"size" bson:"size"`
}

type Doctor struct {
	ID                    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID                primitive.ObjectID `json:"userID" bson:"userID"`
	Name                  string             `json:"name" bson:"name"`
	Email                 string             `json:"email" bson:"email"`
	DateOfBirth           time.Time          `json:"dateOfBirth" bson:"dateOfBirth"`
	HourlyRate            float64            `json:"hourlyRate" bson:"hourlyRate"`
	Affiliation           string             `json:"affiliation" bson:"affiliation"`
	EducationalBackground string             `json:"educationalBackground" bson:"educationalBackground"`
	Speciality            string             `json:"speciality" bson:"speciality"`
	WalletMoney           float64            `json:"walletMoney" bson:"walletMoney"`
	AvailableTimes        []time.Time        `json:"availableTimes" bson:"availableTimes"`
	RequestStatus         string             `json:"requestStatus" bson:"requestStatus"`
	ContractAccepted      bool               `json:"contractAccepted" bson:"contractAccepted"`
	Documents             []UploadedDocument `json:"documents" bson:"documents"`
	CreatedAt             time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt             time.Time          `json:"updatedAt" bson:"updatedAt"`
}
