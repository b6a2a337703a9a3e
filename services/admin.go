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

func hexToObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
	}
	return id, nil
}

type AddAdminInput struct {
	Username string
	Password string
	Email    string
}

/*
* Admins are plain user records of type Admin, no profile document
 */
func AddAdmin(ctx context.Context, input AddAdminInput) (*models.User, error) {
	taken, err := usernameTaken(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.NewAppError(http.StatusConflict, util.USERNAME_ALREADY_TAKEN)
	}
	if err := util.ValidatePassword(input.Password); err != nil {
		return nil, util.NewAppError(http.StatusBadRequest, err.Error())
	}

	userID, err := createUser(ctx, input.Username, input.Password, util.TypeAdmin, input.Email)
	if err != nil {
		return nil, err
	}
	user, err := GetUserByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	user.ID = userID
	user.Password = ""
	return user, nil
}

func GetPendingDoctors(ctx context.Context) ([]models.Doctor, error) {
	coll := db.OpenCollections(util.DoctorCollection)
	var doctors []models.Doctor
	if err := db.FindAll(ctx, coll, bson.M{"requestStatus": util.DoctorPending}, &doctors); err != nil {
		log.Println("Error fetching pending doctors:", err)
		return nil, err
	}
	return doctors, nil
}

/*
* Move a pending doctor request to Approved or Rejected
* The doctor is notified either way
 */
func SetDoctorRequestStatus(ctx context.Context, doctorID string, status string) (*models.Doctor, error) {
	id, err := hexToObjectID(doctorID)
	if err != nil {
		return nil, err
	}
	doctor, err := GetDoctorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor.RequestStatus != util.DoctorPending {
		return nil, util.NewAppError(http.StatusConflict, "Doctor request already handled")
	}

	coll := db.OpenCollections(util.DoctorCollection)
	update := bson.M{"$set": bson.M{"requestStatus": status, "updatedAt": time.Now()}}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": id}, update); err != nil {
		log.Println("Error updating doctor request status:", err)
		return nil, err
	}
	doctor.RequestStatus = status
	if err := redis.DeleteCache(ctx, util.DoctorKey+id.Hex()); err != nil {
		log.Println("Error invalidating doctor cache:", err)
	}

	if err := NotifyUser(ctx, doctor.UserID, "Your registration request has been "+status, ""); err != nil {
		log.Println("Error notifying doctor:", err)
	}
	return doctor, nil
}

/*
* Remove a user together with its patient or doctor profile
 */
func RemoveUser(ctx context.Context, username string) error {
	user, err := GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	switch user.Type {
	case util.TypePatient:
		if patient, err := GetPatientByUsername(ctx, username); err == nil {
			if err := redis.DeleteCache(ctx, util.PatientKey+patient.ID.Hex()); err != nil {
				log.Println("Error invalidating patient cache:", err)
			}
		}
		coll := db.OpenCollections(util.PatientCollection)
		if _, err := db.DeleteOne(ctx, coll, bson.M{"userID": user.ID}); err != nil && err != mongo.ErrNoDocuments {
			log.Println("Error deleting patient profile:", err)
			return err
		}
		if err := redis.DeleteCache(ctx, util.PatientKey+username); err != nil {
			log.Println("Error invalidating patient cache:", err)
		}
	case util.TypeDoctor:
		if doctor, err := GetDoctorByUsername(ctx, username); err == nil {
			if err := redis.DeleteCache(ctx, util.DoctorKey+doctor.ID.Hex()); err != nil {
				log.Println("Error invalidating doctor cache:", err)
			}
		}
		coll := db.OpenCollections(util.DoctorCollection)
		if _, err := db.DeleteOne(ctx, coll, bson.M{"userID": user.ID}); err != nil && err != mongo.ErrNoDocuments {
			log.Println("Error deleting doctor profile:", err)
			return err
		}
		if err := redis.DeleteCache(ctx, util.DoctorKey+username); err != nil {
			log.Println("Error invalidating doctor cache:", err)
		}
	}

	userColl := db.OpenCollections(util.UserCollection)
	if _, err := db.DeleteOne(ctx, userColl, bson.M{"_id": user.ID}); err != nil {
		log.Println("Error deleting user:", err)
		return err
	}
	return nil
}
