package util

// Collection names
const (
	UserCollection            = "USER"
	PatientCollection         = "PATIENT"
	DoctorCollection          = "DOCTOR"
	AppointmentCollection     = "APPOINTMENT"
	FollowUpRequestCollection = "FOLLOWUP_REQUEST"
	PrescriptionCollection    = "PRESCRIPTION"
	HealthPackageCollection   = "HEALTH_PACKAGE"
)

// Cache key prefixes
const (
	UserKey        = "USER:"
	PatientKey     = "PATIENT:"
	DoctorKey      = "DOCTOR:"
	AppointmentKey = "APPOINTMENT:"
)

// User types
const (
	TypePatient = "Patient"
	TypeDoctor  = "Doctor"
	TypeAdmin   = "Admin"
)

// Appointment status values as stored
const (
	StatusUpcoming  = "Upcoming"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Doctor request status values
const (
	DoctorPending  = "Pending"
	DoctorApproved = "Approved"
	DoctorRejected = "Rejected"
)

// Follow-up request status values
const (
	FollowUpPending  = "Pending"
	FollowUpAccepted = "Accepted"
	FollowUpRejected = "Rejected"
)

const (
	USER_NOT_FOUND                 = "User not found"
	USERNAME_ALREADY_TAKEN         = "Username already taken"
	WRONG_USERNAME_OR_PASSWORD     = "Wrong username or password"
	PATIENT_NOT_FOUND              = "Patient not found"
	DOCTOR_NOT_FOUND               = "Issues fetching doctor"
	APPOINTMENT_NOT_FOUND          = "Appointment not found"
	PRESCRIPTION_NOT_FOUND         = "Prescription not found"
	HEALTH_PACKAGE_NOT_FOUND       = "Health package not found"
	NOT_ENOUGH_MONEY               = "Not enough money in wallet"
	ONLY_PATIENTS_CAN_BOOK         = "Only patients can make appointments"
	APPOINTMENT_CREATION_FAILED    = "Appointment creation failed"
	FOLLOW_UP_ALREADY_REQUESTED    = "A follow-up has already been requested for this appointment"
	PRESCRIPTION_ALREADY_FILLED    = "Cannot edit a filled prescription"
	DOCTOR_NOT_APPROVED            = "Doctor request is not approved yet"
	CONTRACT_ALREADY_ACCEPTED      = "Employment contract already accepted"
	FAMILY_MEMBER_NOT_FOUND        = "Family member not found"
	FOLLOW_UP_REQUEST_NOT_FOUND    = "Follow-up request not found"
	FOLLOW_UP_REQUEST_NOT_PENDING  = "Follow-up request has already been handled"
	INVALID_OBJECT_ID              = "Invalid id"
	UNABLE_TO_FETCH_USERNAME       = "Unable to fetch username from context"
	NOT_AUTHORIZED_TO_VIEW_RECORDS = "Not authorized to view these records"
)
