package controllers

import (
	"net/http"

	"ClinicSphere/services"
	"ClinicSphere/util"

	"github.com/gin-gonic/gin"
)

type HealthPackageRequest struct {
	Name                       string  `json:"name" binding:"required"`
	PricePerYear               float64 `json:"pricePerYear" binding:"required,min=0"`
	SessionDiscount            float64 `json:"sessionDiscount" binding:"min=0,max=100"`
	MedicineDiscount           float64 `json:"medicineDiscount" binding:"min=0,max=100"`
	FamilySubscriptionDiscount float64 `json:"familySubscriptionDiscount" binding:"min=0,max=100"`
}

func HealthPackage(r *gin.Engine) {
	packages := r.Group("health-packages")
	{
		packages.GET("/", GetHealthPackages)
		packages.POST("/", requireAdmin(), CreateHealthPackage)
		packages.PUT("/:id", requireAdmin(), UpdateHealthPackage)
		packages.DELETE("/:id", requireAdmin(), DeleteHealthPackage)
	}
}

func GetHealthPackages(c *gin.Context) {
	packages, err := services.GetHealthPackages(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(packages))
}

func CreateHealthPackage(c *gin.Context) {
	var req HealthPackageRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	pkg, err := services.CreateHealthPackage(c, services.HealthPackageInput{
		Name:                       req.Name,
		PricePerYear:               req.PricePerYear,
		SessionDiscount:            req.SessionDiscount,
		MedicineDiscount:           req.MedicineDiscount,
		FamilySubscriptionDiscount: req.FamilySubscriptionDiscount,
	})
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(pkg))
}

func UpdateHealthPackage(c *gin.Context) {
	var req HealthPackageRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	pkg, err := services.UpdateHealthPackage(c, c.Param("id"), services.HealthPackageInput{
		Name:                       req.Name,
		PricePerYear:               req.PricePerYear,
		SessionDiscount:            req.SessionDiscount,
		MedicineDiscount:           req.MedicineDiscount,
		FamilySubscriptionDiscount: req.FamilySubscriptionDiscount,
	})
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(pkg))
}

func DeleteHealthPackage(c *gin.Context) {
	if err := services.DeleteHealthPackage(c, c.Param("id")); err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("deleted"))
}
