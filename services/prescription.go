package services

import (
	"context"
	"log"
	"net/http"
	"time"

	db "ClinicSphere/config/db"
	"ClinicSphere/models"
	"ClinicSphere/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreatePrescriptionInput struct {
	PatientUsername string
	Date            time.Time
	Medicine        []models.PrescribedMedicine
}

// PrescriptionResponse replaces the doctor/patient ids with their names.
type PrescriptionResponse struct {
	ID       string                      `json:"id"`
	Doctor   string                      `json:"doctor"`
	Patient  string                      `json:"patient"`
	Date     time.Time                   `json:"date"`
	IsFilled bool                        `json:"isFilled"`
	Medicine []models.PrescribedMedicine `json:"medicine"`
}

/*
* The issuing doctor comes from the session, the patient from the payload
* New prescriptions start unfilled
 */
func CreatePrescription(ctx context.Context, doctorUsername string, input CreatePrescriptionInput) (*models.Prescription, error) {
	doctor, err := GetDoctorByUsername(ctx, doctorUsername)
	if err != nil {
		return nil, err
	}
	patient, err := GetPatientByUsername(ctx, input.PatientUsername)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	now := time.Now()
	prescription := models.Prescription{
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
		Date:      date,
		Medicine:  input.Medicine,
		IsFilled:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	coll := db.OpenCollections(util.PrescriptionCollection)
	inserted, err := db.CreateOne(ctx, coll, prescription)
	if err != nil {
		log.Println("Error creating prescription:", err)
		return nil, err
	}
	prescription.ID = inserted.InsertedID.(primitive.ObjectID)
	return &prescription, nil
}

func fetchPrescriptionByID(ctx context.Context, id primitive.ObjectID) (*models.Prescription, error) {
	coll := db.OpenCollections(util.PrescriptionCollection)
	var prescription models.Prescription
	if err := db.FindOne(ctx, coll, bson.M{"_id": id}, &prescription); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, util.NotFoundError(util.PRESCRIPTION_NOT_FOUND)
		}
		return nil, err
	}
	return &prescription, nil
}

/*
* Doctors may only edit a prescription while it is unfilled
 */
func EditPrescription(ctx context.Context, prescriptionID string, medicine []models.PrescribedMedicine) (*models.Prescription, error) {
	id, err := primitive.ObjectIDFromHex(prescriptionID)
	if err != nil {
		return nil, util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
	}
	prescription, err := fetchPrescriptionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription.IsFilled {
		return nil, util.NotAuthorizedError(util.PRESCRIPTION_ALREADY_FILLED)
	}

	coll := db.OpenCollections(util.PrescriptionCollection)
	update := bson.M{"$set": bson.M{"medicine": medicine, "updatedAt": time.Now()}}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": id}, update); err != nil {
		log.Println("Error editing prescription:", err)
		return nil, err
	}
	prescription.Medicine = medicine
	return prescription, nil
}

func toPrescriptionResponse(ctx context.Context, prescription *models.Prescription) PrescriptionResponse {
	doctorName := ""
	if doctor, err := GetDoctorByID(ctx, prescription.DoctorID); err == nil {
		doctorName = doctor.Name
	}
	patientName := ""
	if patient, err := GetPatientByID(ctx, prescription.PatientID); err == nil {
		patientName = patient.Name
	}
	return PrescriptionResponse{
		ID:       prescription.ID.Hex(),
		Doctor:   doctorName,
		Patient:  patientName,
		Date:     prescription.Date,
		IsFilled: prescription.IsFilled,
		Medicine: prescription.Medicine,
	}
}

/*
* All prescriptions issued to the given patient, names resolved
 */
func GetPrescriptions(ctx context.Context, patientUsername string) ([]PrescriptionResponse, error) {
	patient, err := GetPatientByUsername(ctx, patientUsername)
	if err != nil {
		return nil, err
	}

	coll := db.OpenCollections(util.PrescriptionCollection)
	var prescriptions []models.Prescription
	if err := db.FindAll(ctx, coll, bson.M{"patientID": patient.ID}, &prescriptions); err != nil {
		log.Println("Error fetching prescriptions:", err)
		return nil, err
	}

	responses := make([]PrescriptionResponse, 0, len(prescriptions))
	for i := range prescriptions {
		responses = append(responses, toPrescriptionResponse(ctx, &prescriptions[i]))
	}
	return responses, nil
}

/*
* Single prescription for the logged-in patient, 403 when it belongs to
* somebody else
 */
func GetSinglePrescription(ctx context.Context, prescriptionID string, patientUsername string) (*PrescriptionResponse, error) {
	id, err := primitive.ObjectIDFromHex(prescriptionID)
	if err != nil {
		return nil, util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
	}
	prescription, err := fetchPrescriptionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patient, err := GetPatientByUsername(ctx, patientUsername)
	if err != nil {
		return nil, err
	}
	if prescription.PatientID != patient.ID {
		return nil, util.NotAuthorizedError(util.NOT_AUTHORIZED_TO_VIEW_RECORDS)
	}
	response := toPrescriptionResponse(ctx, prescription)
	return &response, nil
}

func GetSinglePrescriptionForDoctor(ctx context.Context, prescriptionID string) (*PrescriptionResponse, error) {
	id, err := primitive.ObjectIDFromHex(prescriptionID)
	if err != nil {
		return nil, util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
	}
	prescription, err := fetchPrescriptionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toPrescriptionResponse(ctx, prescription)
	return &response, nil
}
