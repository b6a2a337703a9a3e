package services

import (
	"context"
	"log"
	"net/http"
	"time"

	db "ClinicSphere/config/db"
	redis "ClinicSphere/config/redis"
	"ClinicSphere/models"
	"ClinicSphere/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UpdateDoctorInput struct {
	Email       string
	HourlyRate  float64
	Affiliation string
}

/*
* Doctor lookup by id with a read-through cache
* Availability and wallet mutations invalidate the entry
 */
func GetDoctorByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	key := util.DoctorKey + id.Hex()
	var cached models.Doctor
	if ok, err := redis.GetCache(ctx, key, &cached); ok && err == nil {
		return &cached, nil
	}

	coll := db.OpenCollections(util.DoctorCollection)
	var doctor models.Doctor
	if err := db.FindOne(ctx, coll, bson.M{"_id": id}, &doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, util.NotFoundError(util.DOCTOR_NOT_FOUND)
		}
		return nil, err
	}
	if err := redis.SetCache(ctx, key, doctor); err != nil {
		log.Println("Error caching doctor:", err)
	}
	return &doctor, nil
}

/*
* Replace the availability list and drop the cached doctor
 */
func SetDoctorAvailability(ctx context.Context, id primitive.ObjectID, times []time.Time) error {
	coll := db.OpenCollections(util.DoctorCollection)
	update := bson.M{"$set": bson.M{"availableTimes": times, "updatedAt": time.Now()}}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": id}, update); err != nil {
		return err
	}
	if err := redis.DeleteCache(ctx, util.DoctorKey+id.Hex()); err != nil {
		log.Println("Error invalidating doctor cache:", err)
	}
	return nil
}

/*
* Add a single bookable hour to the doctor's calendar, no duplicates
 */
func AddAvailableTimeSlot(ctx context.Context, username string, slot time.Time) (*models.Doctor, error) {
	doctor, err := GetDoctorByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	doctor.AvailableTimes = AddTimeSlot(doctor.AvailableTimes, slot)
	if err := SetDoctorAvailability(ctx, doctor.ID, doctor.AvailableTimes); err != nil {
		log.Println("Error adding available time slot:", err)
		return nil, err
	}
	return doctor, nil
}

/*
* Swap slots on a reschedule: the old one is released, the new one taken
* Releasing never duplicates an already-listed slot
 */
func ChangeAvailableTimeSlot(ctx context.Context, doctorID primitive.ObjectID, oldDate string, newDate string) error {
	doctor, err := GetDoctorByID(ctx, doctorID)
	if err != nil {
		return err
	}
	times := doctor.AvailableTimes
	if oldSlot, err := time.Parse(time.RFC3339, oldDate); err == nil {
		times = AddTimeSlot(times, oldSlot)
	}
	if newSlot, err := time.Parse(time.RFC3339, newDate); err == nil {
		times = RemoveTimeSlot(times, newSlot)
	}
	return SetDoctorAvailability(ctx, doctorID, times)
}

/*
* Profile fields a doctor may edit about itself
 */
func UpdateDoctor(ctx context.Context, username string, input UpdateDoctorInput) (*models.Doctor, error) {
	doctor, err := GetDoctorByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Email != "" {
		set["email"] = input.Email
		doctor.Email = input.Email
	}
	if input.HourlyRate > 0 {
		set["hourlyRate"] = input.HourlyRate
		doctor.HourlyRate = input.HourlyRate
	}
	if input.Affiliation != "" {
		set["affiliation"] = input.Affiliation
		doctor.Affiliation = input.Affiliation
	}

	coll := db.OpenCollections(util.DoctorCollection)
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": doctor.ID}, bson.M{"$set": set}); err != nil {
		log.Println("Error updating doctor:", err)
		return nil, err
	}
	if err := redis.DeleteCache(ctx, util.DoctorKey+doctor.ID.Hex()); err != nil {
		log.Println("Error invalidating doctor cache:", err)
	}
	return doctor, nil
}

/*
* An approved doctor accepts the employment contract once
* Only then do they show up as bookable
 */
func AcceptEmploymentContract(ctx context.Context, username string) (*models.Doctor, error) {
	doctor, err := GetDoctorByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if doctor.RequestStatus != util.DoctorApproved {
		return nil, util.NotAuthorizedError(util.DOCTOR_NOT_APPROVED)
	}
	if doctor.ContractAccepted {
		return nil, util.NewAppError(http.StatusConflict, util.CONTRACT_ALREADY_ACCEPTED)
	}

	coll := db.OpenCollections(util.DoctorCollection)
	update := bson.M{"$set": bson.M{"contractAccepted": true, "updatedAt": time.Now()}}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": doctor.ID}, update); err != nil {
		log.Println("Error accepting contract:", err)
		return nil, err
	}
	doctor.ContractAccepted = true
	if err := redis.DeleteCache(ctx, util.DoctorKey+doctor.ID.Hex()); err != nil {
		log.Println("Error invalidating doctor cache:", err)
	}
	return doctor, nil
}

/*
* Approved doctors with an accepted contract, the list patients can book from
 */
func GetApprovedDoctors(ctx context.Context) ([]models.Doctor, error) {
	coll := db.OpenCollections(util.DoctorCollection)
	var doctors []models.Doctor
	filter := bson.M{"requestStatus": util.DoctorApproved, "contractAccepted": true}
	if err := db.FindAll(ctx, coll, filter, &doctors); err != nil {
		log.Println("Error from FindAll:", err)
		return nil, err
	}
	return doctors, nil
}
