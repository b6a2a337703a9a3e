package services

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	db "ClinicSphere/config/db"
	redis "ClinicSphere/config/redis"
	"ClinicSphere/models"
	"ClinicSphere/util"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AddFamilyMemberInput struct {
	Name       string
	NationalID string
	Age        int
	Gender     string
	Relation   string
}

// PatientDetails bundles a patient with its history for the doctor view.
type PatientDetails struct {
	Patient       models.Patient        `json:"patient"`
	Appointments  []models.Appointment  `json:"appointments"`
	Prescriptions []models.Prescription `json:"prescriptions"`
}

func GetPatientByID(ctx context.Context, id primitive.ObjectID) (*models.Patient, error) {
	key := util.PatientKey + id.Hex()
	var cached models.Patient
	if ok, err := redis.GetCache(ctx, key, &cached); ok && err == nil {
		return &cached, nil
	}

	coll := db.OpenCollections(util.PatientCollection)
	var patient models.Patient
	if err := db.FindOne(ctx, coll, bson.M{"_id": id}, &patient); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, util.NotFoundError(util.PATIENT_NOT_FOUND)
		}
		return nil, err
	}
	if err := redis.SetCache(ctx, key, patient); err != nil {
		log.Println("Error caching patient:", err)
	}
	return &patient, nil
}

/*
* Patient plus its appointments and prescriptions in one response
 */
func GetPatientDetails(ctx context.Context, id primitive.ObjectID) (*PatientDetails, error) {
	patient, err := GetPatientByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var appointments []models.Appointment
	apptColl := db.OpenCollections(util.AppointmentCollection)
	if err := db.FindAll(ctx, apptColl, bson.M{"patientID": id}, &appointments); err != nil {
		log.Println("Error fetching patient appointments:", err)
		return nil, err
	}

	var prescriptions []models.Prescription
	presColl := db.OpenCollections(util.PrescriptionCollection)
	if err := db.FindAll(ctx, presColl, bson.M{"patientID": id}, &prescriptions); err != nil {
		log.Println("Error fetching patient prescriptions:", err)
		return nil, err
	}

	return &PatientDetails{
		Patient:       *patient,
		Appointments:  appointments,
		Prescriptions: prescriptions,
	}, nil
}

/*
* Case-insensitive prefix search
* An empty name returns everyone
 */
func GetPatientsByName(ctx context.Context, name string) ([]models.Patient, error) {
	coll := db.OpenCollections(util.PatientCollection)
	filter := bson.M{}
	if strings.TrimSpace(name) != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: "^" + name, Options: "i"}}
	}
	var patients []models.Patient
	if err := db.FindAll(ctx, coll, filter, &patients); err != nil {
		log.Println("Error searching patients:", err)
		return nil, err
	}
	return patients, nil
}

/*
* Distinct patients from the doctor's appointments
* upcomingOnly keeps only patients with an appointment still ahead, filtered
* in process because the date field is a string
 */
func GetDoctorPatients(ctx context.Context, doctorUsername string, upcomingOnly bool) ([]models.Patient, error) {
	doctor, err := GetDoctorByUsername(ctx, doctorUsername)
	if err != nil {
		return nil, err
	}

	apptColl := db.OpenCollections(util.AppointmentCollection)
	var appointments []models.Appointment
	if err := db.FindAll(ctx, apptColl, bson.M{"doctorID": doctor.ID}, &appointments); err != nil {
		log.Println("Error fetching doctor appointments:", err)
		return nil, err
	}

	now := time.Now()
	seen := make(map[string]bool)
	patients := []models.Patient{}
	for _, appointment := range appointments {
		if upcomingOnly {
			parsed, err := time.Parse(time.RFC3339, appointment.Date)
			if err != nil || !parsed.After(now) {
				continue
			}
		}
		hex := appointment.PatientID.Hex()
		if seen[hex] {
			continue
		}
		seen[hex] = true
		patient, err := GetPatientByID(ctx, appointment.PatientID)
		if err != nil {
			log.Println("Error fetching patient for doctor listing:", err)
			continue
		}
		patients = append(patients, *patient)
	}
	return patients, nil
}

func AddNoteToPatient(ctx context.Context, id primitive.ObjectID, note string) (*models.Patient, error) {
	patient, err := GetPatientByID(ctx, id)
	if err != nil {
		return nil, err
	}
	coll := db.OpenCollections(util.PatientCollection)
	update := bson.M{
		"$push": bson.M{"notes": note},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": id}, update); err != nil {
		log.Println("Error adding note:", err)
		return nil, err
	}
	patient.Notes = append(patient.Notes, note)
	if err := redis.DeleteCache(ctx, util.PatientKey+id.Hex()); err != nil {
		log.Println("Error invalidating patient cache:", err)
	}
	return patient, nil
}

/*
* Attach a family member to the patient, national ids must not repeat
 */
func AddFamilyMember(ctx context.Context, username string, input AddFamilyMemberInput) (*models.Patient, error) {
	patient, err := GetPatientByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	for _, member := range patient.FamilyMembers {
		if member.NationalID == input.NationalID {
			return nil, util.NewAppError(http.StatusConflict, "Family member already registered")
		}
	}

	member := models.FamilyMember{
		ID:         uuid.NewString(),
		Name:       input.Name,
		NationalID: input.NationalID,
		Age:        input.Age,
		Gender:     input.Gender,
		Relation:   input.Relation,
	}
	coll := db.OpenCollections(util.PatientCollection)
	update := bson.M{
		"$push": bson.M{"familyMembers": member},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": patient.ID}, update); err != nil {
		log.Println("Error adding family member:", err)
		return nil, err
	}
	patient.FamilyMembers = append(patient.FamilyMembers, member)
	if err := invalidatePatientCaches(ctx, patient, username); err != nil {
		log.Println("Error invalidating patient cache:", err)
	}
	return patient, nil
}

/*
* Drop both cache entries for a patient, the username-keyed id mapping and the
* id-keyed entity
 */
func invalidatePatientCaches(ctx context.Context, patient *models.Patient, username string) error {
	if err := redis.DeleteCache(ctx, util.PatientKey+username); err != nil {
		log.Println("Error invalidating patient cache:", err)
		return err
	}
	if err := redis.DeleteCache(ctx, util.PatientKey+patient.ID.Hex()); err != nil {
		log.Println("Error invalidating patient cache:", err)
		return err
	}
	return nil
}

func GetFamilyMembers(ctx context.Context, username string) ([]models.FamilyMember, error) {
	patient, err := GetPatientByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return patient.FamilyMembers, nil
}
