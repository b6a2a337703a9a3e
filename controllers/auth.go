package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"ClinicSphere/models"
	"ClinicSphere/services"
	"ClinicSphere/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxDoctorRequestDocuments = 50

type EmergencyContactRequest struct {
	FullName     string `json:"fullName" binding:"required,min=3,max=255"`
	MobileNumber string `json:"mobileNumber" binding:"required,len=11"`
	Relation     string `json:"relation" binding:"required,min=3,max=255"`
}

type RegisterPatientRequest struct {
	Username         string                  `json:"username" binding:"required,min=3,max=255"`
	Password         string                  `json:"password" binding:"required,min=8"`
	Name             string                  `json:"name" binding:"required,min=3,max=255"`
	Email            string                  `json:"email" binding:"required,email"`
	MobileNumber     string                  `json:"mobileNumber" binding:"required,len=11"`
	DateOfBirth      time.Time               `json:"dateOfBirth" binding:"required"`
	Gender           string                  `json:"gender" binding:"required,min=3,max=255"`
	EmergencyContact EmergencyContactRequest `json:"emergencyContact" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Auth(r *gin.Engine) {
	auth := r.Group("auth")
	{
		auth.POST("/register-patient", RegisterPatient)
		auth.POST("/login", Login)
		auth.POST("/request-doctor", RequestDoctor)
	}
}

// AuthPrivate registers the auth routes that need a valid token.
func AuthPrivate(r *gin.Engine) {
	auth := r.Group("auth")
	{
		auth.GET("/me", GetCurrentUser)
		auth.POST("/session", RegisterSession)
		auth.DELETE("/session", UnregisterSession)
		auth.GET("/:username", GetUserByUsername)
	}
}

type RegisterSessionRequest struct {
	SocketID string `json:"socketId" binding:"required"`
}

/*
* Associate the caller's live socket with its username
* Goes through the session registry, never onto the user record
 */
func RegisterSession(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	var req RegisterSessionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	services.Sessions.Register(username, req.SocketID)
	c.JSON(http.StatusOK, util.SuccessResponse("registered"))
}

func UnregisterSession(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	services.Sessions.Unregister(username)
	c.JSON(http.StatusOK, util.SuccessResponse("unregistered"))
}

func currentUsername(c *gin.Context) (string, error) {
	username := c.GetString("username")
	if username == "" {
		return "", util.NotAuthenticatedError(util.UNABLE_TO_FETCH_USERNAME)
	}
	return username, nil
}

/*
* Bind the registration payload and pass to the service
* The response carries a token, registering logs the patient in
 */
func RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	token, err := services.RegisterPatient(c, services.RegisterPatientInput{
		Username:     req.Username,
		Password:     req.Password,
		Name:         req.Name,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		DateOfBirth:  req.DateOfBirth,
		Gender:       req.Gender,
		EmergencyContact: models.EmergencyContact{
			FullName:     req.EmergencyContact.FullName,
			MobileNumber: req.EmergencyContact.MobileNumber,
			Relation:     req.EmergencyContact.Relation,
		},
	})
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{"token": token}))
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	token, err := services.Login(c, req.Username, req.Password)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{"token": token}))
}

/*
* Multipart form: the doctor's details plus up to 50 credential documents
* Only the file metadata is kept on the doctor record
 */
func RequestDoctor(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	files := form.File["documents"]
	if len(files) > maxDoctorRequestDocuments {
		c.JSON(http.StatusBadRequest, util.FailedResponse(errors.New("at most 50 documents can be attached")))
		return
	}

	hourlyRate, err := strconv.ParseFloat(c.PostForm("hourlyRate"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(errors.New("invalid hourlyRate")))
		return
	}
	dateOfBirth, err := time.Parse(time.RFC3339, c.PostForm("dateOfBirth"))
	if err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(errors.New("invalid dateOfBirth")))
		return
	}

	documents := make([]models.UploadedDocument, 0, len(files))
	for _, file := range files {
		documents = append(documents, models.UploadedDocument{
			ID:       uuid.NewString(),
			Filename: file.Filename,
			Size:     file.Size,
		})
	}

	doctor, err := services.SubmitDoctorRequest(c, services.DoctorRequestInput{
		Username:              c.PostForm("username"),
		Password:              c.PostForm("password"),
		Name:                  c.PostForm("name"),
		Email:                 c.PostForm("email"),
		DateOfBirth:           dateOfBirth,
		HourlyRate:            hourlyRate,
		Affiliation:           c.PostForm("affiliation"),
		EducationalBackground: c.PostForm("educationalBackground"),
		Speciality:            c.PostForm("speciality"),
		Documents:             documents,
	})
	if err != nil {
		log.Println("Error from SubmitDoctorRequest:", err)
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor))
}

func GetCurrentUser(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	user, err := services.GetCurrentUser(c, username)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(user))
}

/*
* Only admins and the user itself can look up a user by name
 */
func GetUserByUsername(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	requested := c.Param("username")
	if requested != username {
		admin, err := services.IsAdmin(c, username)
		if err != nil {
			c.JSON(util.StatusOf(err), util.FailedResponse(err))
			return
		}
		if !admin {
			err := util.NotAuthorizedError(util.NOT_AUTHORIZED_TO_VIEW_RECORDS)
			c.JSON(err.Code, util.FailedResponse(err))
			return
		}
	}
	user, err := services.GetCurrentUser(c, requested)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(user))
}
