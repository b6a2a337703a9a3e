package routes

import (
	"ClinicSphere/controllers"

	authorization "ClinicSphere/config/authorization"

	"github.com/gin-gonic/gin"
)

func Routes(r *gin.Engine) {

	//public
	controllers.Auth(r)
	//privateroutes
	r.Use(authorization.JWTAuth())
	controllers.AuthPrivate(r)
	controllers.Appointment(r)
	controllers.Prescription(r)
	controllers.Patient(r)
	controllers.Doctor(r)
	controllers.Admin(r)
	controllers.HealthPackage(r)
}
