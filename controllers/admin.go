package controllers

import (
	"net/http"

	"ClinicSphere/services"
	"ClinicSphere/util"

	"github.com/gin-gonic/gin"
)

type AddAdminRequest struct {
	Username string `json:"username" binding:"required,min=3,max=255"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"required,email"`
}

func Admin(r *gin.Engine) {
	admin := r.Group("admin")
	admin.Use(requireAdmin())
	{
		admin.POST("/", AddAdmin)
		admin.GET("/pending-doctors", GetPendingDoctors)
		admin.POST("/doctors/:id/approve", ApproveDoctor)
		admin.POST("/doctors/:id/reject", RejectDoctor)
		admin.DELETE("/users/:username", RemoveUser)
	}
}

/*
* Everything under /admin needs a user of type Admin
 */
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c)
		if err != nil {
			c.AbortWithStatusJSON(util.StatusOf(err), util.FailedResponse(err))
			return
		}
		admin, err := services.IsAdmin(c, username)
		if err != nil {
			c.AbortWithStatusJSON(util.StatusOf(err), util.FailedResponse(err))
			return
		}
		if !admin {
			notAllowed := util.NotAuthorizedError(util.NOT_AUTHORIZED_TO_VIEW_RECORDS)
			c.AbortWithStatusJSON(notAllowed.Code, util.FailedResponse(notAllowed))
			return
		}
		c.Next()
	}
}

func AddAdmin(c *gin.Context) {
	var req AddAdminRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	user, err := services.AddAdmin(c, services.AddAdminInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(user))
}

func GetPendingDoctors(c *gin.Context) {
	doctors, err := services.GetPendingDoctors(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctors))
}

func ApproveDoctor(c *gin.Context) {
	doctor, err := services.SetDoctorRequestStatus(c, c.Param("id"), util.DoctorApproved)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor))
}

func RejectDoctor(c *gin.Context) {
	doctor, err := services.SetDoctorRequestStatus(c, c.Param("id"), util.DoctorRejected)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor))
}

func RemoveUser(c *gin.Context) {
	if err := services.RemoveUser(c, c.Param("username")); err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("removed"))
}
