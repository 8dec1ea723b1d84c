package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "Utilisateur"
)

// Roles lists every accepted role.
var Roles = []Role{RoleAdmin, RoleUser}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is the root aggregate stored in the users collection. Skills and
// trainings are embedded and only exist through their owner.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name" validate:"required"`
	Position     string             `bson:"position,omitempty" json:"position,omitempty"`
	Email        string             `bson:"email" json:"email" validate:"required"`
	Role         Role               `bson:"role" json:"role" validate:"role"`
	PasswordHash string             `bson:"password" json:"-" validate:"required"`
	Skills       []Skill            `bson:"skills" json:"skills" validate:"dive"`
	Trainings    []Training         `bson:"trainings" json:"trainings" validate:"dive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NormalizeEmail trims and lower-cases an address; emails are compared in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Normalize applies trimming, case folding and defaults in place.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Position = strings.TrimSpace(u.Position)
	u.Email = NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Skills == nil {
		u.Skills = []Skill{}
	}
	if u.Trainings == nil {
		u.Trainings = []Training{}
	}
	for i := range u.Skills {
		u.Skills[i].Normalize()
	}
	for i := range u.Trainings {
		u.Trainings[i].Normalize()
	}
}

// Validate runs the required-field and enum checks, including embedded records.
func (u *User) Validate() error {
	return validateStruct(u)
}

// Identity returns the caller view of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Skill finds an embedded skill by id.
func (u *User) Skill(id primitive.ObjectID) (int, *Skill) {
	for i := range u.Skills {
		if u.Skills[i].ID == id {
			return i, &u.Skills[i]
		}
	}
	return -1, nil
}

// Training finds an embedded training by id.
func (u *User) Training(id primitive.ObjectID) (int, *Training) {
	for i := range u.Trainings {
		if u.Trainings[i].ID == id {
			return i, &u.Trainings[i]
		}
	}
	return -1, nil
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (u *User) Clone() *User {
	c := *u
	c.Skills = append([]Skill{}, u.Skills...)
	c.Trainings = make([]Training, len(u.Trainings))
	for i, t := range u.Trainings {
		c.Trainings[i] = t
		if t.CompletionDate != nil {
			d := *t.CompletionDate
			c.Trainings[i].CompletionDate = &d
		}
	}
	return &c
}

// Identity is the authenticated caller, resolved once by the auth middleware
// and handed to handlers explicitly.
type Identity struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  Role               `json:"role"`
}

// HasRole reports whether the identity holds one of roles.
func (i Identity) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// NewUser is the payload accepted by register and user creation.
type NewUser struct {
	Name     string `json:"name" binding:"required"`
	Position string `json:"position"`
	Email    string `json:"email" binding:"required"`
	Role     Role   `json:"role" binding:"omitempty,role"`
	Password string `json:"password" binding:"required"`
}

// UserPatch lists the mutable user fields; nil means unchanged.
type UserPatch struct {
	Name     *string `json:"name" binding:"omitempty"`
	Position *string `json:"position"`
	Email    *string `json:"email"`
	Role     *Role   `json:"role" binding:"omitempty,role"`
	Password *string `json:"password"`
}

// Apply merges the patch onto u. The password is left to the caller since it
// has to be hashed.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Position != nil {
		u.Position = *p.Position
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	u.Normalize()
}
