package class

import (
	"fmt"
	"strings"
	"time"

	"fitness-tracker/backend/internal/utils"
)

// MaxTrainers is the number of trainers a class can hold.
const MaxTrainers = 5

type TrainerRef struct {
	TrainerID    string `firestore:"trainerId" json:"trainerId" validate:"docid"`
	TrainerName  string `firestore:"trainerName" json:"trainerName"`
	TrainerEmail string `firestore:"trainerEmail" json:"trainerEmail" validate:"required,email"`
	TrainerImage string `firestore:"trainerImage,omitempty" json:"trainerImage,omitempty"`
}

type Class struct {
	ID          string       `firestore:"-" json:"id"`
	Name        string       `firestore:"name" json:"name"`
	NameLower   string       `firestore:"nameLower" json:"-"`
	Image       string       `firestore:"image,omitempty" json:"image,omitempty"`
	Details     string       `firestore:"details,omitempty" json:"details,omitempty"`
	ExtraInfo   string       `firestore:"extraInfo,omitempty" json:"extraInfo,omitempty"`
	Trainers    []TrainerRef `firestore:"trainer" json:"trainer"`
	TotalBooked int64        `firestore:"totalBooked" json:"totalBooked"`
	CreatedAt   time.Time    `firestore:"createdAt" json:"createdAt"`
}

func (c Class) HasTrainer(email string) bool {
	for _, t := range c.Trainers {
		if strings.EqualFold(t.TrainerEmail, email) {
			return true
		}
	}
	return false
}

// AddTrainer appends ref unless the trainer is already listed or the class is full.
func (c *Class) AddTrainer(ref TrainerRef) error {
	if c.HasTrainer(ref.TrainerEmail) {
		return fmt.Errorf("%w: %s already teaches %s", ErrTrainerExists, ref.TrainerEmail, c.Name)
	}
	if len(c.Trainers) >= MaxTrainers {
		return fmt.Errorf("%w: %s already has %d trainers", ErrClassFull, c.Name, MaxTrainers)
	}
	c.Trainers = append(c.Trainers, ref)
	return nil
}

// TrainersWithEmail returns the stored entries for email, in stored form, so
// they can be passed to an array removal.
func (c Class) TrainersWithEmail(email string) []TrainerRef {
	var out []TrainerRef
	for _, t := range c.Trainers {
		if strings.EqualFold(t.TrainerEmail, email) {
			out = append(out, t)
		}
	}
	return out
}

type CreateInput struct {
	Name      string `json:"name" validate:"required,max=120"`
	Image     string `json:"image,omitempty" validate:"omitempty,url"`
	Details   string `json:"details,omitempty" validate:"max=5000"`
	ExtraInfo string `json:"extraInfo,omitempty" validate:"max=2000"`
}

func (in *CreateInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Image = strings.TrimSpace(in.Image)
	in.Details = strings.TrimSpace(in.Details)
	in.ExtraInfo = strings.TrimSpace(in.ExtraInfo)
}

func (in *TrainerRef) Trim() {
	in.TrainerID = strings.TrimSpace(in.TrainerID)
	in.TrainerName = strings.TrimSpace(in.TrainerName)
	in.TrainerEmail = utils.NormalizeEmail(in.TrainerEmail)
	in.TrainerImage = strings.TrimSpace(in.TrainerImage)
}

type SearchResult struct {
	Classes     []Class `json:"classes"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
	Total       int     `json:"total"`
}
