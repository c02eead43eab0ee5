package staff

import "github.com/BruksfildServices01/clinic-crm/internal/httperr"

type Role string

const (
	RoleConsultant Role = "consultant"
	RoleDoctor     Role = "doctor"
	RoleNurse      Role = "nurse"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleConsultant, RoleDoctor, RoleNurse, RoleAdmin:
		return true
	}
	return false
}

func ParseRole(v string) (Role, error) {
	r := Role(v)
	if !r.Valid() {
		return "", httperr.ErrBusiness("invalid_role")
	}
	return r, nil
}
