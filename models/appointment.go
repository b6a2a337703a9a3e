package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment date is stored as an RFC 3339 string, matching the wire format
// the frontend sends. Comparisons go through time.Parse at read time.
type Appointment struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PatientID     primitive.ObjectID `json:"patientID" bson:"patientID"`
	DoctorID      primitive.ObjectID `json:"doctorID" bson:"doctorID"`
	Date          string             `json:"date" bson:"date"`
	Status        string             `json:"status" bson:"status"`
	FamilyID      string             `json:"familyID" bson:"familyID"`
	ReservedFor   string             `json:"reservedFor" bson:"reservedFor"`
	PaidByPatient float64            `json:"paidByPatient" bson:"paidByPatient"`
	PaidToDoctor  float64            `json:"paidToDoctor" bson:"paidToDoctor"`
	ParentID      string             `json:"parentID,omitempty" bson:"parentID,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// FollowUpRequest is a pending follow-up a doctor asked for, which the
// patient has to accept before it turns into an Appointment.
type FollowUpRequest struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AppointmentID primitive.ObjectID `json:"appointmentID" bson:"appointmentID"`
	PatientID     primitive.ObjectID `json:"patientID" bson:"patientID"`
	DoctorID      primitive.ObjectID `json:"doctorID" bson:"doctorID"`
	Date          string             `json:"date" bson:"date"`
	Status        string             `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
