// Package policy maps a role plus approval status to the set of permitted
// actions. Route guards consult it so the mapping stays testable without
// the web layer.
package policy

import "clinic-appointment-api/internal/model"

type Action string

const (
	BookAppointment      Action = "appointment:book"
	CancelAppointment    Action = "appointment:cancel"
	ViewOwnAppointments  Action = "appointment:view-own"
	ViewAssigned         Action = "appointment:view-assigned"
	UpdateStatus         Action = "appointment:update-status"
	ViewAllAppointments  Action = "appointment:view-all"
	ManageAppointments   Action = "appointment:manage"
	ManageUsers          Action = "account:manage"
	ApproveRegistrations Action = "account:approve"
	ProvisionDoctors     Action = "account:provision-doctor"
)

var byRole = map[string][]Action{
	model.RoleClient: {BookAppointment, CancelAppointment, ViewOwnAppointments},
	model.RoleDoctor: {ViewAssigned, UpdateStatus},
	model.RoleAdmin: {
		ViewAllAppointments, ManageAppointments, ManageUsers,
		ApproveRegistrations, ProvisionDoctors,
	},
}

// PermittedActions returns the actions available to an account. Pending and
// rejected accounts get nothing; their only move is another login attempt,
// which fails with its own workflow error.
func PermittedActions(role, approvalStatus string) []Action {
	if approvalStatus != model.ApprovalApproved {
		return nil
	}
	return byRole[role]
}

func Permits(role, approvalStatus string, action Action) bool {
	for _, a := range PermittedActions(role, approvalStatus) {
		if a == action {
			return true
		}
	}
	return false
}
