package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PrescribedMedicine struct {
	Name     string `json:"name" bson:"name"`
	Dosage   string `json:"dosage" bson:"dosage"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

type Prescription struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	DoctorID  primitive.ObjectID   `json:"doctorID" bson:"doctorID"`
	PatientID primitive.ObjectID   `json:"patientID" bson:"patientID"`
	Date      time.Time            `json:"date" bson:"date"`
	Medicine  []PrescribedMedicine `json:"medicine" bson:"medicine"`
	IsFilled  bool                 `json:"isFilled" bson:"isFilled"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}
