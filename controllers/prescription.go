package controllers

import (
	"net/http"
	"time"

	"ClinicSphere/models"
	"ClinicSphere/services"
	"ClinicSphere/util"

	"github.com/gin-gonic/gin"
)

type PrescribedMedicineRequest struct {
	Name     string `json:"name" binding:"required"`
	Dosage   string `json:"dosage" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type CreatePrescriptionRequest struct {
	PatientUsername string                      `json:"patientUsername" binding:"required"`
	Date            time.Time                   `json:"date"`
	Medicine        []PrescribedMedicineRequest `json:"medicine" binding:"required,min=1,dive"`
}

type EditPrescriptionRequest struct {
	Medicine []PrescribedMedicineRequest `json:"medicine" binding:"required,min=1,dive"`
}

func Prescription(r *gin.Engine) {
	prescriptions := r.Group("prescriptions")
	{
		prescriptions.POST("/", CreatePrescription)
		prescriptions.PUT("/edit/:id", EditPrescription)
		prescriptions.GET("/mine", GetMyPrescriptions)
		prescriptions.GET("/mine/:id", GetMyPrescription)
		prescriptions.GET("/single/:id", GetPrescriptionForDoctor)
		prescriptions.GET("/:patientUsername", GetPrescriptionsForPatient)
	}
}

func toMedicineList(reqs []PrescribedMedicineRequest) []models.PrescribedMedicine {
	medicine := make([]models.PrescribedMedicine, 0, len(reqs))
	for _, m := range reqs {
		medicine = append(medicine, models.PrescribedMedicine{
			Name:     m.Name,
			Dosage:   m.Dosage,
			Quantity: m.Quantity,
		})
	}
	return medicine
}

/*
* Approved doctors only
 */
func CreatePrescription(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	approved, err := services.IsDoctorAndApproved(c, username)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	if !approved {
		notAllowed := util.NotAuthorizedError(util.DOCTOR_NOT_APPROVED)
		c.JSON(notAllowed.Code, util.FailedResponse(notAllowed))
		return
	}

	var req CreatePrescriptionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	prescription, err := services.CreatePrescription(c, username, services.CreatePrescriptionInput{
		PatientUsername: req.PatientUsername,
		Date:            req.Date,
		Medicine:        toMedicineList(req.Medicine),
	})
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(prescription))
}

func EditPrescription(c *gin.Context) {
	var req EditPrescriptionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	prescription, err := services.EditPrescription(c, c.Param("id"), toMedicineList(req.Medicine))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(prescription))
}

func GetMyPrescriptions(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	prescriptions, err := services.GetPrescriptions(c, username)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(prescriptions))
}

func GetMyPrescription(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	prescription, err := services.GetSinglePrescription(c, c.Param("id"), username)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(prescription))
}

func GetPrescriptionForDoctor(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	approved, err := services.IsDoctorAndApproved(c, username)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	if !approved {
		notAllowed := util.NotAuthorizedError(util.DOCTOR_NOT_APPROVED)
		c.JSON(notAllowed.Code, util.FailedResponse(notAllowed))
		return
	}
	prescription, err := services.GetSinglePrescriptionForDoctor(c, c.Param("id"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(prescription))
}

/*
* Approved doctors can read any patient's prescriptions
* A patient can only read its own
 */
func GetPrescriptionsForPatient(c *gin.Context) {
	username, err := currentUsername(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	patientUsername := c.Param("patientUsername")

	approved, err := services.IsDoctorAndApproved(c, username)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	if !approved {
		isPatient, err := services.IsPatient(c, username)
		if err != nil {
			c.JSON(util.StatusOf(err), util.FailedResponse(err))
			return
		}
		if !isPatient || patientUsername != username {
			notAllowed := util.NotAuthorizedError(util.NOT_AUTHORIZED_TO_VIEW_RECORDS)
			c.JSON(notAllowed.Code, util.FailedResponse(notAllowed))
			return
		}
	}

	prescriptions, err := services.GetPrescriptions(c, patientUsername)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(prescriptions))
}
