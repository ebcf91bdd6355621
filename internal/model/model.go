package model

import "time"

// Roles. Every account has exactly one.
const (
	RoleAdmin  = "Admin"
	RoleDoctor = "Doctor"
	RoleClient = "Client"
)

// Approval status gates login for self-registered accounts.
const (
	ApprovalPending  = "Pending"
	ApprovalApproved = "Approved"
	ApprovalRejected = "Rejected"
)

// Appointment statuses. The assigned doctor may set any of these; there is
// no transition legality check.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	FullName       string     `json:"fullName"`
	Role           string     `json:"role"`
	Specialization *string    `json:"specialization,omitempty"`
	LicenseNumber  *string    `json:"licenseNumber,omitempty"`
	ApprovalStatus string     `json:"approvalStatus"`
	AdminNotes     *string    `json:"adminNotes,omitempty"`
	ApprovedAt     *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy     *string    `json:"approvedBy,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type Appointment struct {
	ID           string    `json:"appointmentId"`
	PatientName  string    `json:"patientName"`
	Department   string    `json:"department"`
	Date         time.Time `json:"appointmentDate"`
	DoctorID     *string   `json:"doctorId,omitempty"`
	ClientUserID *string   `json:"clientUserId,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AppointmentDetail carries joined doctor/client display names for list
// views. Names are resolved explicitly in the query, never lazily.
type AppointmentDetail struct {
	Appointment
	DoctorName *string `json:"doctorName,omitempty"`
	ClientName *string `json:"clientName,omitempty"`
}

func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleClient:
		return true
	}
	return false
}
