package domain

import "encoding/json"

type Role string

const (
	RoleUser  Role = "user"
	RoleGuide Role = "guide"
	RoleAdmin Role = "admin"
)

// User is a profile keyed by email. Profile attributes other than the
// modelled ones (photo, phone, ...) travel in Extra.
type User struct {
	ID    string
	Email string
	Name  string
	Role  Role
	Extra Fields
}

func (u User) MarshalJSON() ([]byte, error) {
	known := map[string]any{"email": u.Email}
	if u.ID != "" {
		known["_id"] = u.ID
	}
	if u.Name != "" {
		known["name"] = u.Name
	}
	if u.Role != "" {
		known["role"] = u.Role
	}
	return flatten(u.Extra, known)
}

func (u *User) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	u.ID = takeString(raw, "_id")
	u.Email = takeString(raw, "email")
	u.Name = takeString(raw, "name")
	u.Role = Role(takeString(raw, "role"))
	u.Extra = remaining(raw)
	return nil
}
