package domain

import "encoding/json"

type Role string

const (
	RoleFrontDesk    Role = "front-desk"
	RoleHousekeeping Role = "housekeeping"
	RoleCulinary     Role = "culinary"
)

// Roles lists every staff role in reporting order.
var Roles = []Role{RoleFrontDesk, RoleHousekeeping, RoleCulinary}

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleFrontDesk, RoleHousekeeping, RoleCulinary:
		return Role(s), true
	default:
		return "", false
	}
}

// Profile is the role-specific part of a staff member.
// Implementations: *FrontDesk, *Housekeeping, *Culinary.
type Profile interface {
	Role() Role
	profile()
}

type FrontDesk struct {
	Shift  string   `json:"shift"`
	Duties []string `json:"duties"`
}

type Housekeeping struct {
	Floor        string `json:"floor"`
	RoomsCleaned int    `json:"rooms_cleaned"`
	Available    bool   `json:"available"`
}

type Culinary struct {
	Specialty         string `json:"specialty"`
	YearsOfExperience int    `json:"years_of_experience" validate:"gte=0"`
}

func (*FrontDesk) Role() Role    { return RoleFrontDesk }
func (*Housekeeping) Role() Role { return RoleHousekeeping }
func (*Culinary) Role() Role     { return RoleCulinary }

func (*FrontDesk) profile()    {}
func (*Housekeeping) profile() {}
func (*Culinary) profile()     {}

type StaffMember struct {
	ID string `json:"id"`
	Person
	Profile Profile `json:"profile"`
}

// Role returns the role carried by the profile, or "" for a member without one.
func (s *StaffMember) Role() Role {
	if s.Profile == nil {
		return ""
	}
	return s.Profile.Role()
}

// Clone copies the member including its profile so callers can't mutate pool state.
func (s *StaffMember) Clone() StaffMember {
	out := *s
	switch p := s.Profile.(type) {
	case *FrontDesk:
		fd := *p
		fd.Duties = append([]string(nil), p.Duties...)
		out.Profile = &fd
	case *Housekeeping:
		hk := *p
		out.Profile = &hk
	case *Culinary:
		c := *p
		out.Profile = &c
	}
	return out
}

func (s StaffMember) MarshalJSON() ([]byte, error) {
	type alias StaffMember
	return json.Marshal(struct {
		alias
		Role Role `json:"role"`
	}{alias(s), s.Role()})
}
