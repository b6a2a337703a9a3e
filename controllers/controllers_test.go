package controllers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestRegisterPatientRejectsBadPayload(t *testing.T) {
	c, w := newTestContext(http.MethodPost, "/auth/register-patient", `{"username":"x"}`)
	RegisterPatient(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRejectsMissingFields(t *testing.T) {
	c, w := newTestContext(http.MethodPost, "/auth/login", `{"username":"amira"}`)
	Login(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMakeAppointmentRejectsUnauthenticated(t *testing.T) {
	// no username on the context means the middleware never ran
	c, w := newTestContext(http.MethodPost, "/appointments/makeappointment", `{}`)
	MakeAppointment(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMakeAppointmentRejectsBadPayload(t *testing.T) {
	c, w := newTestContext(http.MethodPost, "/appointments/makeappointment", `{"date":""}`)
	c.Set("username", "amira")
	MakeAppointment(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRescheduleRejectsMissingDate(t *testing.T) {
	c, w := newTestContext(http.MethodPost, "/appointments/reschedule", `{"appointment":{"id":"abc"}}`)
	c.Set("username", "amira")
	Reschedule(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequireAdminRejectsUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/guarded", requireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestDoctorRejectsTooManyDocuments(t *testing.T) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for i := 0; i < maxDoctorRequestDocuments+1; i++ {
		part, err := form.CreateFormFile("documents", fmt.Sprintf("credential-%d.pdf", i))
		require.NoError(t, err)
		_, err = part.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, form.Close())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/request-doctor", &buf)
	c.Request.Header.Set("Content-Type", form.FormDataContentType())

	RequestDoctor(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "documents")
}

func TestCreatePrescriptionRejectsEmptyMedicine(t *testing.T) {
	c, w := newTestContext(http.MethodPut, "/prescriptions/edit/abc", `{"medicine":[]}`)
	EditPrescription(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
