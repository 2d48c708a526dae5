package constants

import "fmt"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

var AllRoles = []string{RoleAdmin, RoleStaff}

// Role error message templates
const (
	ErrOnlyAdminsCanAccess = "Only admins can access %s."
	ErrOnlyStaffCanAccess  = "Only admins or staff can access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}
