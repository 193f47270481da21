package models

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// Caller identifies who is performing an operation. The zero value is an anonymous caller.
type Caller struct {
	UserID string
	Role   UserRole
}

func (c Caller) Authenticated() bool {
	return c.UserID != ""
}

func (c Caller) IsAdmin() bool {
	return c.Authenticated() && c.Role == RoleAdmin
}

// Actor returns the audit value recorded in createdBy/updatedBy fields.
func (c Caller) Actor() *string {
	if c.UserID == "" {
		return nil
	}
	id := c.UserID
	return &id
}
