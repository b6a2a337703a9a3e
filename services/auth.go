package services

import (
	"context"
	"log"
	"net/http"
	"time"

	authorization "ClinicSphere/config/authorization"
	db "ClinicSphere/config/db"
	redis "ClinicSphere/config/redis"
	"ClinicSphere/models"
	"ClinicSphere/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type RegisterPatientInput struct {
	Username         string
	Password         string
	Name             string
	Email            string
	MobileNumber     string
	DateOfBirth      time.Time
	Gender           string
	EmergencyContact models.EmergencyContact
}

type DoctorRequestInput struct {
	Username              string
	Password              string
	Name                  string
	Email                 string
	DateOfBirth           time.Time
	HourlyRate            float64
	Affiliation           string
	EducationalBackground string
	Speciality            string
	Documents             []models.UploadedDocument
}

// CurrentUser is the /auth/me and /auth/:username response shape.
type CurrentUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Type     string `json:"type"`
	ModelID  string `json:"modelId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

func GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	coll := db.OpenCollections(util.UserCollection)
	var user models.User
	err := db.FindOne(ctx, coll, bson.M{"username": username}, &user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, util.NotFoundError(util.USER_NOT_FOUND)
		}
		return nil, err
	}
	return &user, nil
}

/*
* Cache-only resolution: the username key maps to the patient id, the id key
* holds the entity
* Both must hit, so dropping the id key is enough to force a fresh read
 */
func cachedPatientByUsername(ctx context.Context, username string) (*models.Patient, bool) {
	var idHex string
	if ok, err := redis.GetCache(ctx, util.PatientKey+username, &idHex); !ok || err != nil {
		return nil, false
	}
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, false
	}
	var patient models.Patient
	if ok, err := redis.GetCache(ctx, util.PatientKey+id.Hex(), &patient); !ok || err != nil {
		return nil, false
	}
	return &patient, true
}

func cachedDoctorByUsername(ctx context.Context, username string) (*models.Doctor, bool) {
	var idHex string
	if ok, err := redis.GetCache(ctx, util.DoctorKey+username, &idHex); !ok || err != nil {
		return nil, false
	}
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, false
	}
	var doctor models.Doctor
	if ok, err := redis.GetCache(ctx, util.DoctorKey+id.Hex(), &doctor); !ok || err != nil {
		return nil, false
	}
	return &doctor, true
}

/*
* Look the patient up through its user record
* The username key only carries the patient id, never the entity, so wallet
* and profile mutations have a single id-keyed entry to invalidate
 */
func GetPatientByUsername(ctx context.Context, username string) (*models.Patient, error) {
	if patient, ok := cachedPatientByUsername(ctx, username); ok {
		return patient, nil
	}

	user, err := GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	coll := db.OpenCollections(util.PatientCollection)
	var patient models.Patient
	if err := db.FindOne(ctx, coll, bson.M{"userID": user.ID}, &patient); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, util.NotFoundError(util.PATIENT_NOT_FOUND)
		}
		return nil, err
	}
	if err := redis.SetCache(ctx, util.PatientKey+username, patient.ID.Hex()); err != nil {
		log.Println("Error caching patient id:", err)
	}
	if err := redis.SetCache(ctx, util.PatientKey+patient.ID.Hex(), patient); err != nil {
		log.Println("Error caching patient:", err)
	}
	return &patient, nil
}

func GetDoctorByUsername(ctx context.Context, username string) (*models.Doctor, error) {
	if doctor, ok := cachedDoctorByUsername(ctx, username); ok {
		return doctor, nil
	}

	user, err := GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	coll := db.OpenCollections(util.DoctorCollection)
	var doctor models.Doctor
	if err := db.FindOne(ctx, coll, bson.M{"userID": user.ID}, &doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, util.NotFoundError(util.DOCTOR_NOT_FOUND)
		}
		return nil, err
	}
	if err := redis.SetCache(ctx, util.DoctorKey+username, doctor.ID.Hex()); err != nil {
		log.Println("Error caching doctor id:", err)
	}
	if err := redis.SetCache(ctx, util.DoctorKey+doctor.ID.Hex(), doctor); err != nil {
		log.Println("Error caching doctor:", err)
	}
	return &doctor, nil
}

func IsAdmin(ctx context.Context, username string) (bool, error) {
	user, err := GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return user.Type == util.TypeAdmin, nil
}

func IsPatient(ctx context.Context, username string) (bool, error) {
	user, err := GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return user.Type == util.TypePatient, nil
}

func IsDoctorAndApproved(ctx context.Context, username string) (bool, error) {
	user, err := GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if user.Type != util.TypeDoctor {
		return false, nil
	}
	doctor, err := GetDoctorByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return doctor.RequestStatus == util.DoctorApproved, nil
}

func usernameTaken(ctx context.Context, username string) (bool, error) {
	coll := db.OpenCollections(util.UserCollection)
	var existing models.User
	err := db.FindOne(ctx, coll, bson.M{"username": username}, &existing)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

/*
* Create a user document with the hashed password
* Email stays empty for patients and doctors, their profile record carries it
* Return the inserted id so the profile record can point back at it
 */
func createUser(ctx context.Context, username string, password string, userType string, email string) (primitive.ObjectID, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Error hashing password:", err)
		return primitive.NilObjectID, err
	}
	now := time.Now()
	user := models.User{
		Username:      username,
		Password:      string(hashed),
		Email:         email,
		Type:          userType,
		Notifications: []models.Notification{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	coll := db.OpenCollections(util.UserCollection)
	inserted, err := db.CreateOne(ctx, coll, user)
	if err != nil {
		log.Println("Error creating user:", err)
		return primitive.NilObjectID, err
	}
	return inserted.InsertedID.(primitive.ObjectID), nil
}

/*
* Reject taken usernames and weak passwords
* Create the user plus its patient record
* Return a fresh token so registration also logs the patient in
 */
func RegisterPatient(ctx context.Context, input RegisterPatientInput) (string, error) {
	taken, err := usernameTaken(ctx, input.Username)
	if err != nil {
		log.Println("Error from usernameTaken:", err)
		return "", err
	}
	if taken {
		return "", util.NewAppError(http.StatusConflict, util.USERNAME_ALREADY_TAKEN)
	}
	if err := util.ValidatePassword(input.Password); err != nil {
		return "", util.NewAppError(http.StatusBadRequest, err.Error())
	}

	userID, err := createUser(ctx, input.Username, input.Password, util.TypePatient, "")
	if err != nil {
		return "", err
	}

	now := time.Now()
	patient := models.Patient{
		UserID:           userID,
		Name:             input.Name,
		Email:            input.Email,
		MobileNumber:     input.MobileNumber,
		DateOfBirth:      input.DateOfBirth,
		Gender:           input.Gender,
		EmergencyContact: input.EmergencyContact,
		WalletMoney:      0,
		Notes:            []string{},
		FamilyMembers:    []models.FamilyMember{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	patColl := db.OpenCollections(util.PatientCollection)
	if _, err := db.CreateOne(ctx, patColl, patient); err != nil {
		log.Println("Error creating patient:", err)
		return "", err
	}

	return authorization.GenerateJWT(input.Username, util.TypePatient)
}

/*
* Fetch the user and compare the bcrypt hash
* A missing user and a wrong password answer 401 with the same message
 */
func Login(ctx context.Context, username string, password string) (string, error) {
	coll := db.OpenCollections(util.UserCollection)
	var user models.User
	err := db.FindOne(ctx, coll, bson.M{"username": username}, &user)
	if err != nil {
		log.Println("Error fetching user on login:", err)
		return "", util.NotAuthenticatedError(util.WRONG_USERNAME_OR_PASSWORD)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.NotAuthenticatedError(util.WRONG_USERNAME_OR_PASSWORD)
	}
	return authorization.GenerateJWT(user.Username, user.Type)
}

/*
* Create the doctor's user record and a doctor document with status Pending
* The admin later moves the status to Approved or Rejected
 */
func SubmitDoctorRequest(ctx context.Context, input DoctorRequestInput) (*models.Doctor, error) {
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

	userID, err := createUser(ctx, input.Username, input.Password, util.TypeDoctor, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doctor := models.Doctor{
		UserID:                userID,
		Name:                  input.Name,
		Email:                 input.Email,
		DateOfBirth:           input.DateOfBirth,
		HourlyRate:            input.HourlyRate,
		Affiliation:           input.Affiliation,
		EducationalBackground: input.EducationalBackground,
		Speciality:            input.Speciality,
		AvailableTimes:        []time.Time{},
		RequestStatus:         util.DoctorPending,
		Documents:             input.Documents,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	docColl := db.OpenCollections(util.DoctorCollection)
	inserted, err := db.CreateOne(ctx, docColl, doctor)
	if err != nil {
		log.Println("Error creating doctor:", err)
		return nil, err
	}
	doctor.ID = inserted.InsertedID.(primitive.ObjectID)
	return &doctor, nil
}

/*
* Resolve the profile record matching the user type
* Admins have no profile document, the username doubles as the name
 */
func GetCurrentUser(ctx context.Context, username string) (*CurrentUser, error) {
	user, err := GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	out := &CurrentUser{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Type:     user.Type,
	}
	switch user.Type {
	case util.TypePatient:
		patient, err := GetPatientByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		out.ModelID = patient.ID.Hex()
		out.Email = patient.Email
		out.Name = patient.Name
	case util.TypeDoctor:
		doctor, err := GetDoctorByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		out.ModelID = doctor.ID.Hex()
		out.Email = doctor.Email
		out.Name = doctor.Name
	default:
		out.Name = user.Username
		out.Email = user.Email
	}
	return out, nil
}
