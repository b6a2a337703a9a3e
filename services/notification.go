package services

import (
	"context"
	"log"
	"sync"
	"time"

	db "ClinicSphere/config/db"
	"ClinicSphere/models"
	"ClinicSphere/util"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionRegistry tracks which socket session belongs to which username.
// All socket association goes through here instead of being written onto the
// user record from arbitrary code paths.
type SessionRegistry interface {
	Register(username string, socketID string)
	Unregister(username string)
	SocketID(username string) (string, bool)
}

type inMemorySessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewSessionRegistry() SessionRegistry {
	return &inMemorySessionRegistry{sessions: make(map[string]string)}
}

func (r *inMemorySessionRegistry) Register(username string, socketID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[username] = socketID
}

func (r *inMemorySessionRegistry) Unregister(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, username)
}

func (r *inMemorySessionRegistry) SocketID(username string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.sessions[username]
	return id, ok
}

// Sessions is the registry the HTTP layer registers sockets with.
var Sessions = NewSessionRegistry()

/*
* Append a notification onto the user document
 */
func NotifyUser(ctx context.Context, userID primitive.ObjectID, title string, description string) error {
	coll := db.OpenCollections(util.UserCollection)
	notification := models.Notification{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
	}
	update := bson.M{
		"$push": bson.M{"notifications": notification},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err := db.UpdateOne(ctx, coll, bson.M{"_id": userID}, update)
	if err != nil {
		log.Println("Error while pushing notification:", err)
	}
	return err
}

/*
* Look up the patient behind the appointment
* Push a notification describing what happened to it
 */
func SendAppointmentNotificationToPatient(ctx context.Context, appointment *models.Appointment, event string) {
	patColl := db.OpenCollections(util.PatientCollection)
	var patient models.Patient
	if err := db.FindOne(ctx, patColl, bson.M{"_id": appointment.PatientID}, &patient); err != nil {
		log.Println("Error fetching patient for appointment notification:", err)
		return
	}
	title := "Your appointment has been " + event
	description := "Appointment on " + appointment.Date + " has been " + event
	if err := NotifyUser(ctx, patient.UserID, title, description); err != nil {
		log.Println("Error from NotifyUser:", err)
	}
}
