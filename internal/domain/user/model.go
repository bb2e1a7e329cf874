package user

import (
	"strings"
	"time"

	"fitness-tracker/backend/internal/utils"
)

const (
	RoleMember  = "member"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

const (
	TrainerStatusNone     = "none"
	TrainerStatusPending  = "pending"
	TrainerStatusRejected = "rejected"
	TrainerStatusApproved = "approved"
	TrainerStatusRemoved  = "removed"
)

type User struct {
	Email         string    `firestore:"email" json:"email"`
	Name          string    `firestore:"name" json:"name"`
	PhotoURL      string    `firestore:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role          string    `firestore:"role" json:"role"`
	TrainerStatus string    `firestore:"trainerStatus" json:"trainerStatus"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
	LastLoginAt   time.Time `firestore:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
}

func ValidRole(r string) bool {
	switch r {
	case RoleMember, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,docid"`
	Name     string `json:"name" validate:"required,max=120"`
	PhotoURL string `json:"photoURL,omitempty" validate:"omitempty,url"`
}

func (in *RegisterInput) Trim() {
	in.Email = utils.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.PhotoURL = strings.TrimSpace(in.PhotoURL)
}

type UpdateProfileInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	PhotoURL *string `json:"photoURL,omitempty" validate:"omitempty,url"`
}

func (in *UpdateProfileInput) Trim() {
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		in.Name = &v
	}
	if in.PhotoURL != nil {
		v := strings.TrimSpace(*in.PhotoURL)
		in.PhotoURL = &v
	}
}
