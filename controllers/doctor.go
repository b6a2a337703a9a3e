package controllers

import (
	"net/http"
	"time"

	"ClinicSphere/services"
	"ClinicSphere/util"

	"github.com/gin-gonic/gin"
)

type AddTimeSlotRequest struct {
	Slot time.Time `json:"slot" binding:"required"`
}

type UpdateDoctorRequest struct {
	Email       string  `json:"email" binding:"omitempty,email"`
	HourlyRate  float64 `json:"hourlyRate" binding:"omitempty,min=0"`
	Affiliation string  `json:"affiliation"`
}

func Doctor(r *gin.Engine) {
	doctors := r.Group("doctors")
	{
		doctors.GET("/approved", GetApprovedDoctors)
		doctors.GET("/me", GetMyDoctorProfile)
		doctors.PATCH("/me", UpdateDoctorProfile)
		doctors.POST("/availability", AddAvailableTimeSlot)
		doctors.GET("/availability", GetAvailableTimeSlots)
		doctors.POST("/accept-contract", AcceptEmploymentContract)
	}
}

func GetApprovedDoctors(c *gin.Context) {
	doctors, err := services.GetApprovedDoctors(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctors))
}

func GetMyDoctorProfile(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	doctor, err := services.GetDoctorByUsername(c, username)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor))
}

func UpdateDoctorProfile(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	var req UpdateDoctorRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	doctor, err := services.UpdateDoctor(c, username, services.UpdateDoctorInput{
		Email:       req.Email,
		HourlyRate:  req.HourlyRate,
		Affiliation: req.Affiliation,
	})
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor))
}

/*
* One bookable hour at a time
 */
func AddAvailableTimeSlot(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	var req AddTimeSlotRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	doctor, err := services.AddAvailableTimeSlot(c, username, req.Slot)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor.AvailableTimes))
}

func GetAvailableTimeSlots(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	doctor, err := services.GetDoctorByUsername(c, username)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor.AvailableTimes))
}

func AcceptEmploymentContract(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	doctor, err := services.AcceptEmploymentContract(c, username)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor))
}
