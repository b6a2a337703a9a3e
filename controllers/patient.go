package controllers

import (
	"net/http"

	"ClinicSphere/services"
	"ClinicSphere/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AddFamilyMemberRequest struct {
	Name       string `json:"name" binding:"required,min=3,max=255"`
	NationalID string `json:"nationalId" binding:"required,len=10"`
	Age        int    `json:"age" binding:"required,min=1"`
	Gender     string `json:"gender" binding:"required,min=3,max=255"`
	Relation   string `json:"relation" binding:"required,min=3,max=255"`
}

type AddNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

type SubscribePackageRequest struct {
	HealthPackageID string `json:"healthPackageId" binding:"required"`
}

func Patient(r *gin.Engine) {
	patients := r.Group("patients")
	{
		patients.GET("/search", SearchPatients)
		patients.GET("/mine", GetDoctorPatients)
		patients.GET("/:id", GetPatientDetails)
		patients.POST("/:id/notes", AddNoteToPatient)
		patients.POST("/family-members", AddFamilyMember)
		patients.GET("/family-members/mine", GetFamilyMembers)
		patients.POST("/subscribe", SubscribeToHealthPackage)
		patients.POST("/unsubscribe", UnsubscribeFromHealthPackage)
	}
}

func SearchPatients(c *gin.Context) {
	patients, err := services.GetPatientsByName(c, c.Query("name"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(patients))
}

/*
* The doctor's own patients, derived from its appointments
* ?upcoming=true keeps only patients with an appointment still ahead
 */
func GetDoctorPatients(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	upcomingOnly := c.Query("upcoming") == "true"
	patients, err := services.GetDoctorPatients(c, username, upcomingOnly)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(patients))
}

func GetPatientDetails(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		badID := util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
		c.JSON(badID.Code, util.FailedResponse(badID))
		return
	}
	details, err := services.GetPatientDetails(c, id)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(details))
}

func AddNoteToPatient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		badID := util.NewAppError(http.StatusBadRequest, util.INVALID_OBJECT_ID)
		c.JSON(badID.Code, util.FailedResponse(badID))
		return
	}
	var req AddNoteRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	patient, err := services.AddNoteToPatient(c, id, req.Note)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(patient))
}

func AddFamilyMember(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	var req AddFamilyMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	patient, err := services.AddFamilyMember(c, username, services.AddFamilyMemberInput{
		Name:       req.Name,
		NationalID: req.NationalID,
		Age:        req.Age,
		Gender:     req.Gender,
		Relation:   req.Relation,
	})
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(patient))
}

func GetFamilyMembers(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	members, err := services.GetFamilyMembers(c, username)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(members))
}

func SubscribeToHealthPackage(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	var req SubscribePackageRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	if err := services.SubscribeToHealthPackage(c, username, req.HealthPackageID); err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("subscribed"))
}

func UnsubscribeFromHealthPackage(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	if err := services.UnsubscribeFromHealthPackage(c, username); err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("unsubscribed"))
}
