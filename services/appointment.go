package services

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	db "ClinicSphere/config/db"
	"ClinicSphere/models"
	"ClinicSphere/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookAppointmentInput struct {
	Username         string
	DoctorID         string
	Date             string
	FamilyID         string
	ReservedFor      string
	ToPayUsingWallet float64
	SessionPrice     float64
}

type FollowUpInput struct {
	PatientID   string
	DoctorID    string
	Date        string
	FamilyID    string
	ReservedFor string
}

// AppointmentResponse is one row of the filtered listing, enriched with the
// doctor's name and current availability.
type AppointmentResponse struct {
	ID          string   `json:"id"`
	PatientID   string   `json:"patientID"`
	DoctorID    string   `json:"doctorID"`
	DoctorName  string   `json:"doctorName"`
	DoctorTimes []string `json:"doctorTimes"`
	Date        string   `json:"date"`
	FamilyID    string   `json:"familyID"`
	ReservedFor string   `json:"reservedFor"`
	Status      string   `json:"status"`
}

/*
* Projection of the status shown to clients
* A past appointment still stored as Upcoming reads as Completed
* The stored record is never touched
 */
func DeriveDisplayStatus(stored string, date string, now time.Time) string {
	parsed, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return stored
	}
	if parsed.Before(now) && stored == util.StatusUpcoming {
		return util.StatusCompleted
	}
	return stored
}

var statusPriority = map[string]int{
	util.StatusUpcoming:  1,
	util.StatusCompleted: 2,
	util.StatusCancelled: 3,
}

// SortByStatusPriority orders Upcoming first, then Completed, then Cancelled.
// The listing is status-ordered, not date-ordered.
func SortByStatusPriority(responses []AppointmentResponse) {
	sort.SliceStable(responses, func(i, j int) bool {
		return statusPriority[responses[i].Status] < statusPriority[responses[j].Status]
	})
}

func HasTimeSlot(times []time.Time, slot time.Time) bool {
	for _, t := range times {
		if t.Equal(slot) {
			return true
		}
	}
	return false
}

// RemoveTimeSlot drops every occurrence of slot.
func RemoveTimeSlot(times []time.Time, slot time.Time) []time.Time {
	out := make([]time.Time, 0, len(times))
	for _, t := range times {
		if !t.Equal(slot) {
			out = append(out, t)
		}
	}
	return out
}

// AddTimeSlot releases a slot back without duplicating it.
func AddTimeSlot(times []time.Time, slot time.Time) []time.Time {
	if HasTimeSlot(times, slot) {
		return times
	}
	return append(times, slot)
}

/*
* Refund policy on cancellation
* A doctor cancelling refunds the patient in full and gives back the fee
* A patient cancelling forfeits the payment
 */
func CancellationRefund(appointment *models.Appointment, cancelledByDoctor bool) (refund float64, clawback float64) {
	if cancelledByDoctor {
		return appointment.PaidByPatient, appointment.PaidToDoctor
	}
	return 0, 0
}

func fetchAppointmentByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	coll := db.OpenCollections(util.AppointmentCollection)
	var appointment models.Appointment
	if err := db.FindOne(ctx, coll, bson.M{"_id": id}, &appointment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, util.NotFoundError(util.APPOINTMENT_NOT_FOUND)
		}
		return nil, err
	}
	return &appointment, nil
}

/*
* Create the appointment record and take the booked slot off the doctor's list
* Slot removal failing does not undo the appointment, matching the original flow
 */
func createAndRemoveTime(ctx context.Context, patientID primitive.ObjectID, doctor *models.Doctor, input BookAppointmentInput) (*models.Appointment, error) {
	now := time.Now()
	reservedFor := input.ReservedFor
	if reservedFor == "" {
		reservedFor = "Me"
	}
	appointment := models.Appointment{
		PatientID:     patientID,
		DoctorID:      doctor.ID,
		Date:          input.Date,
		Status:        util.StatusUpcoming,
		FamilyID:      input.FamilyID,
		ReservedFor:   reservedFor,
		PaidByPatient: input.SessionPrice,
		PaidToDoctor:  doctor.HourlyRate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	coll := db.OpenCollections(util.AppointmentCollection)
	inserted, err := db.CreateOne(ctx, coll, appointment)
	if err != nil {
		log.Println("Error creating appointment:", err)
		return nil, err
	}
	appointment.ID = inserted.InsertedID.(primitive.ObjectID)

	if slot, parseErr := time.Parse(time.RFC3339, input.Date); parseErr == nil {
		if err := SetDoctorAvailability(ctx, doctor.ID, RemoveTimeSlot(doctor.AvailableTimes, slot)); err != nil {
			log.Println("Error removing booked slot:", err)
		}
	}
	return &appointment, nil
}

/*
* Preconditions in order: user exists, user is a patient, patient record
* exists, doctor exists, wallet covers the payment
* Debit the patient and credit the doctor by the hourly rate, then create the
* record and free the slot
* If creation fails the wallet writes are manually reversed
 */
func MakeAppointment(ctx context.Context, input BookAppointmentInput) (*models.Appointment, error) {
	user, err := GetUserByUsername(ctx, input.Username)
	if err != nil {
		return nil, util.NotAuthenticatedError(util.USER_NOT_FOUND)
	}
	if user.Type != util.TypePatient {
		return nil, util.NotAuthorizedError(util.ONLY_PATIENTS_CAN_BOOK)
	}
	patient, err := GetPatientByUsername(ctx, input.Username)
	if err != nil {
		return nil, util.NotFoundError(util.PATIENT_NOT_FOUND)
	}

	doctorID, err := primitive.ObjectIDFromHex(input.DoctorID)
	if err != nil {
		return nil, util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
	}
	doctor, err := GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, util.NotFoundError(util.DOCTOR_NOT_FOUND)
	}

	if patient.WalletMoney-input.ToPayUsingWallet < 0 {
		return nil, util.NotAuthorizedError(util.NOT_ENOUGH_MONEY)
	}

	if err := Wallet.TransferFunds(ctx, patient.ID, doctor.ID, input.ToPayUsingWallet, doctor.HourlyRate); err != nil {
		log.Println("Error from TransferFunds:", err)
		return nil, err
	}

	appointment, err := createAndRemoveTime(ctx, patient.ID, doctor, input)
	if err != nil {
		if revertErr := Wallet.RevertTransfer(ctx, patient.ID, doctor.ID, input.ToPayUsingWallet, doctor.HourlyRate); revertErr != nil {
			log.Println("Error reverting wallets after failed booking:", revertErr)
		}
		return nil, util.NewAppError(http.StatusInternalServerError, util.APPOINTMENT_CREATION_FAILED)
	}

	SendAppointmentNotificationToPatient(ctx, appointment, "booked")
	return appointment, nil
}

/*
* Patients see their own appointments, doctors theirs, everyone else all
* Each row is enriched with the doctor's name and availability
* Status is the derived projection, stored records stay as they are
 */
func GetFilteredAppointments(ctx context.Context, username string) ([]AppointmentResponse, error) {
	user, err := GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if user.Type == util.TypePatient {
		patient, err := GetPatientByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		filter["patientID"] = patient.ID
	} else if user.Type == util.TypeDoctor {
		doctor, err := GetDoctorByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		filter["doctorID"] = doctor.ID
	}

	coll := db.OpenCollections(util.AppointmentCollection)
	var appointments []models.Appointment
	if err := db.FindAll(ctx, coll, filter, &appointments); err != nil {
		log.Println("Error from FindAll:", err)
		return nil, err
	}

	now := time.Now()
	responses := make([]AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		doctorName := ""
		doctorTimes := []string{}
		if doctor, err := GetDoctorByID(ctx, appointment.DoctorID); err == nil {
			doctorName = doctor.Name
			for _, t := range doctor.AvailableTimes {
				doctorTimes = append(doctorTimes, t.UTC().Format(time.RFC3339))
			}
		} else {
			log.Println("Error enriching appointment with doctor:", err)
		}
		reservedFor := appointment.ReservedFor
		if reservedFor == "" {
			reservedFor = "Me"
		}
		responses = append(responses, AppointmentResponse{
			ID:          appointment.ID.Hex(),
			PatientID:   appointment.PatientID.Hex(),
			DoctorID:    appointment.DoctorID.Hex(),
			DoctorName:  doctorName,
			DoctorTimes: doctorTimes,
			Date:        appointment.Date,
			FamilyID:    appointment.FamilyID,
			ReservedFor: reservedFor,
			Status:      DeriveDisplayStatus(appointment.Status, appointment.Date, now),
		})
	}

	SortByStatusPriority(responses)
	return responses, nil
}

/*
* Put the old slot back on the doctor's calendar and take the new one off
* The date is mutated in place, status stays whatever it was
 */
func RescheduleAppointment(ctx context.Context, appointmentID string, rescheduleDate string) (*models.Appointment, error) {
	id, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
	}
	appointment, err := fetchAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ChangeAvailableTimeSlot(ctx, appointment.DoctorID, appointment.Date, rescheduleDate); err != nil {
		log.Println("Error from ChangeAvailableTimeSlot:", err)
	}

	coll := db.OpenCollections(util.AppointmentCollection)
	update := bson.M{"$set": bson.M{"date": rescheduleDate, "updatedAt": time.Now()}}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": id}, update); err != nil {
		log.Println("Error updating appointment date:", err)
		return nil, err
	}
	appointment.Date = rescheduleDate

	SendAppointmentNotificationToPatient(ctx, appointment, "rescheduled")
	return appointment, nil
}

/*
* Doctor-initiated follow-up, created directly and linked to its parent
 */
func CreateFollowUpAppointment(ctx context.Context, input FollowUpInput, parentID string) (*models.Appointment, error) {
	parent, err := primitive.ObjectIDFromHex(parentID)
	if err != nil {
		return nil, util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
	}
	if _, err := fetchAppointmentByID(ctx, parent); err != nil {
		return nil, err
	}

	patientID, err := primitive.ObjectIDFromHex(input.PatientID)
	if err != nil {
		return nil, util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
	}
	doctorID, err := primitive.ObjectIDFromHex(input.DoctorID)
	if err != nil {
		return nil, util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
	}

	now := time.Now()
	reservedFor := input.ReservedFor
	if reservedFor == "" {
		reservedFor = "Me"
	}
	followUp := models.Appointment{
		PatientID:   patientID,
		DoctorID:    doctorID,
		Date:        input.Date,
		Status:      util.StatusUpcoming,
		FamilyID:    input.FamilyID,
		ReservedFor: reservedFor,
		ParentID:    parentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	coll := db.OpenCollections(util.AppointmentCollection)
	inserted, err := db.CreateOne(ctx, coll, followUp)
	if err != nil {
		log.Println("Error creating follow-up appointment:", err)
		return nil, err
	}
	followUp.ID = inserted.InsertedID.(primitive.ObjectID)

	SendAppointmentNotificationToPatient(ctx, &followUp, "followed up")
	return &followUp, nil
}

/*
* Existence of a follow-up for the parent appointment
* A pending follow-up request signals through an AppError so callers can tell
* "already requested" apart from a plain lookup failure
 */
func CheckForExistingFollowUp(ctx context.Context, parentID string) (bool, error) {
	parent, err := primitive.ObjectIDFromHex(parentID)
	if err != nil {
		return false, util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
	}

	reqColl := db.OpenCollections(util.FollowUpRequestCollection)
	var pending models.FollowUpRequest
	err = db.FindOne(ctx, reqColl, bson.M{"appointmentID": parent, "status": util.FollowUpPending}, &pending)
	if err == nil {
		return true, util.NewAppError(http.StatusConflict, util.FOLLOW_UP_ALREADY_REQUESTED)
	}
	if err != mongo.ErrNoDocuments {
		return false, err
	}

	apptColl := db.OpenCollections(util.AppointmentCollection)
	var existing models.Appointment
	err = db.FindOne(ctx, apptColl, bson.M{"parentID": parentID}, &existing)
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

/*
* Patient-side follow-up request, pending until the patient confirms it
 */
func RequestFollowUpAppointment(ctx context.Context, parentID string, date string) (*models.FollowUpRequest, error) {
	parent, err := primitive.ObjectIDFromHex(parentID)
	if err != nil {
		return nil, util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
	}
	appointment, err := fetchAppointmentByID(ctx, parent)
	if err != nil {
		return nil, err
	}

	exists, err := CheckForExistingFollowUp(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.NewAppError(http.StatusConflict, util.FOLLOW_UP_ALREADY_REQUESTED)
	}

	now := time.Now()
	request := models.FollowUpRequest{
		AppointmentID: parent,
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		Date:          date,
		Status:        util.FollowUpPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	coll := db.OpenCollections(util.FollowUpRequestCollection)
	inserted, err := db.CreateOne(ctx, coll, request)
	if err != nil {
		log.Println("Error creating follow-up request:", err)
		return nil, err
	}
	request.ID = inserted.InsertedID.(primitive.ObjectID)
	return &request, nil
}

/*
* Patient confirms or rejects a pending follow-up request
* Confirming turns the request into a linked appointment with no charge
 */
func HandleFollowUpRequest(ctx context.Context, requestID string, accept bool) (*models.FollowUpRequest, error) {
	id, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
	}
	coll := db.OpenCollections(util.FollowUpRequestCollection)
	var request models.FollowUpRequest
	if err := db.FindOne(ctx, coll, bson.M{"_id": id}, &request); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, util.NotFoundError(util.FOLLOW_UP_REQUEST_NOT_FOUND)
		}
		return nil, err
	}
	if request.Status != util.FollowUpPending {
		return nil, util.NewAppError(http.StatusConflict, util.FOLLOW_UP_REQUEST_NOT_PENDING)
	}

	status := util.FollowUpRejected
	if accept {
		status = util.FollowUpAccepted
		if _, err := CreateFollowUpAppointment(ctx, FollowUpInput{
			PatientID: request.PatientID.Hex(),
			DoctorID:  request.DoctorID.Hex(),
			Date:      request.Date,
		}, request.AppointmentID.Hex()); err != nil {
			return nil, err
		}
	}

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": id}, update); err != nil {
		log.Println("Error updating follow-up request:", err)
		return nil, err
	}
	request.Status = status
	return &request, nil
}

/*
* Release the slot back to the doctor and mark the record Cancelled
* Wallet reversal depends on who cancelled, see CancellationRefund
 */
func DeleteAppointment(ctx context.Context, appointmentID string, cancelledByDoctor bool) (*models.Appointment, error) {
	id, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
	}
	appointment, err := fetchAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if slot, parseErr := time.Parse(time.RFC3339, appointment.Date); parseErr == nil {
		if doctor, err := GetDoctorByID(ctx, appointment.DoctorID); err == nil {
			if err := SetDoctorAvailability(ctx, doctor.ID, AddTimeSlot(doctor.AvailableTimes, slot)); err != nil {
				log.Println("Error releasing cancelled slot:", err)
			}
		}
	}

	refund, clawback := CancellationRefund(appointment, cancelledByDoctor)
	if refund > 0 || clawback > 0 {
		if err := Wallet.RevertTransfer(ctx, appointment.PatientID, appointment.DoctorID, refund, clawback); err != nil {
			log.Println("Error refunding cancelled appointment:", err)
			return nil, err
		}
	}

	coll := db.OpenCollections(util.AppointmentCollection)
	update := bson.M{"$set": bson.M{"status": util.StatusCancelled, "updatedAt": time.Now()}}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": id}, update); err != nil {
		log.Println("Error cancelling appointment:", err)
		return nil, err
	}
	appointment.Status = util.StatusCancelled

	SendAppointmentNotificationToPatient(ctx, appointment, "cancelled")
	return appointment, nil
}
