package controllers

import (
	"errors"
	"net/http"

	"ClinicSphere/services"
	"ClinicSphere/util"

	"github.com/gin-gonic/gin"
)

type MakeAppointmentRequest struct {
	DoctorID         string  `json:"doctorid" binding:"required"`
	Date             string  `json:"date" binding:"required"`
	FamilyID         string  `json:"familyID"`
	ReservedFor      string  `json:"reservedFor"`
	ToPayUsingWallet float64 `json:"toPayUsingWallet" binding:"min=0"`
	SessionPrice     float64 `json:"sessionPrice" binding:"min=0"`
}

type FollowUpAppointmentRequest struct {
	PatientID   string `json:"patientID" binding:"required"`
	DoctorID    string `json:"doctorID" binding:"required"`
	Date        string `json:"date" binding:"required"`
	FamilyID    string `json:"familyID"`
	ReservedFor string `json:"reservedFor"`
}

type CreateFollowUpRequest struct {
	Appointment   FollowUpAppointmentRequest `json:"appointment" binding:"required"`
	AppointmentID string                     `json:"appointmentID" binding:"required"`
}

type RescheduleRequest struct {
	Appointment struct {
		ID string `json:"id" binding:"required"`
	} `json:"appointment" binding:"required"`
	RescheduleDate string `json:"rescheduleDate" binding:"required"`
}

type RequestFollowUpRequest struct {
	AppointmentID string `json:"appointmentID" binding:"required"`
	Date          string `json:"date" binding:"required"`
}

type HandleFollowUpRequest struct {
	RequestID string `json:"requestID" binding:"required"`
	Accept    bool   `json:"accept"`
}

type DeleteAppointmentRequest struct {
	CancelledByDoctor bool `json:"cancelledByDoctor"`
}

func Appointment(r *gin.Engine) {
	appointments := r.Group("appointments")
	{
		appointments.GET("/filter", FilterAppointments)
		appointments.POST("/makeappointment", MakeAppointment)
		appointments.POST("/createFollowUp", CreateFollowUp)
		appointments.GET("/checkFollowUp/:appointmentID", CheckFollowUp)
		appointments.POST("/reschedule", Reschedule)
		appointments.POST("/requestFollowUp", RequestFollowUp)
		appointments.POST("/handleFollowUp", HandleFollowUp)
		appointments.POST("/delete/:appointmentId", DeleteAppointment)
	}
}

/*
* Identity comes from the session, the filter is implicit
 */
func FilterAppointments(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	appointments, err := services.GetFilteredAppointments(c, username)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(appointments))
}

/*
* Bind the booking payload and pass to the service
* The service answers distinct statuses for the different rejection reasons
 */
func MakeAppointment(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	var req MakeAppointmentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	appointment, err := services.MakeAppointment(c, services.BookAppointmentInput{
		Username:         username,
		DoctorID:         req.DoctorID,
		Date:             req.Date,
		FamilyID:         req.FamilyID,
		ReservedFor:      req.ReservedFor,
		ToPayUsingWallet: req.ToPayUsingWallet,
		SessionPrice:     req.SessionPrice,
	})
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(appointment))
}

func CreateFollowUp(c *gin.Context) {
	var req CreateFollowUpRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	followUp, err := services.CreateFollowUpAppointment(c, services.FollowUpInput{
		PatientID:   req.Appointment.PatientID,
		DoctorID:    req.Appointment.DoctorID,
		Date:        req.Appointment.Date,
		FamilyID:    req.Appointment.FamilyID,
		ReservedFor: req.Appointment.ReservedFor,
	}, req.AppointmentID)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(followUp))
}

/*
* Branches on the error type: an AppError means a follow-up already exists
* for this appointment, anything else is a plain failure
 */
func CheckFollowUp(c *gin.Context) {
	exists, err := services.CheckForExistingFollowUp(c, c.Param("appointmentID"))
	if err != nil {
		var appErr *util.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.Code, gin.H{"exists": true, "message": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

func Reschedule(c *gin.Context) {
	var req RescheduleRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	appointment, err := services.RescheduleAppointment(c, req.Appointment.ID, req.RescheduleDate)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(appointment))
}

func RequestFollowUp(c *gin.Context) {
	var req RequestFollowUpRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	request, err := services.RequestFollowUpAppointment(c, req.AppointmentID, req.Date)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(request))
}

func HandleFollowUp(c *gin.Context) {
	var req HandleFollowUpRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	request, err := services.HandleFollowUpRequest(c, req.RequestID, req.Accept)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(request))
}

func DeleteAppointment(c *gin.Context) {
	var req DeleteAppointmentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	appointment, err := services.DeleteAppointment(c, c.Param("appointmentId"), req.CancelledByDoctor)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(appointment))
}
