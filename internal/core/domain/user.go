package domain

// RoleAdmin is the built-in role that may manage users and roles.
const RoleAdmin = "admin"

// User is a staff member who signs in to the dashboard.
type User struct {
	Meta         `bson:",inline"`
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"password_hash"`
	Role         Ref    `json:"role" bson:"role"`
	Designation  string `json:"designation" bson:"designation"`
	Mobile       string `json:"mobile" bson:"mobile"`
	Active       bool   `json:"active" bson:"active"`
}

func (u *User) Ref() Ref { return Ref{ID: u.ID, Name: u.Name} }

func (u *User) IsAdmin() bool { return u.Role.Name == RoleAdmin }

// UserFilter narrows the users list.
type UserFilter struct {
	ListQuery
	RoleID string
	Active *bool
}

// Role groups permissions under a name. Only RoleAdmin carries special meaning.
type Role struct {
	Meta `bson:",inline"`
	Name string `json:"name" bson:"name"`
}

func (r *Role) Ref() Ref { return Ref{ID: r.ID, Name: r.Name} }

func (r *Role) BuiltIn() bool { return r.Name == RoleAdmin }
