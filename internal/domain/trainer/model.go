package trainer

import (
	"fmt"
	"strings"
	"time"

	"fitness-tracker/backend/internal/utils"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Application is a trainer application; once approved it also carries the
// trainer's bookable slots.
type Application struct {
	ID            string            `firestore:"-" json:"id"`
	FullName      string            `firestore:"fullName" json:"fullName"`
	Email         string            `firestore:"email" json:"email"`
	Age           int               `firestore:"age,omitempty" json:"age,omitempty"`
	ProfileImage  string            `firestore:"profileImage,omitempty" json:"profileImage,omitempty"`
	Skills        []string          `firestore:"skills" json:"skills"`
	AvailableDays []string          `firestore:"availableDays" json:"availableDays"`
	AvailableTime string            `firestore:"availableTime,omitempty" json:"availableTime,omitempty"`
	Experience    string            `firestore:"experience,omitempty" json:"experience,omitempty"`
	OtherInfo     string            `firestore:"otherInfo,omitempty" json:"otherInfo,omitempty"`
	SocialLinks   map[string]string `firestore:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	Status        string            `firestore:"status" json:"status"`
	AppliedAt     time.Time         `firestore:"appliedAt" json:"appliedAt"`
	ApprovedAt    time.Time         `firestore:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	Slots         []Slot            `firestore:"slots" json:"slots"`
}

type Slot struct {
	ID        string    `firestore:"id" json:"id"`
	SlotName  string    `firestore:"slotName" json:"slotName"`
	SlotTime  string    `firestore:"slotTime" json:"slotTime"`
	Day       string    `firestore:"day" json:"day"`
	ClassID   string    `firestore:"classId" json:"classId"`
	ClassName string    `firestore:"className" json:"className"`
	OtherInfo string    `firestore:"otherInfo,omitempty" json:"otherInfo,omitempty"`
	Bookings  []Booking `firestore:"bookings" json:"bookings"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

type Booking struct {
	ID            string    `firestore:"id" json:"id"`
	StudentEmail  string    `firestore:"studentEmail" json:"studentEmail"`
	StudentName   string    `firestore:"studentName" json:"studentName"`
	TransactionID string    `firestore:"transactionId" json:"transactionId"`
	Amount        float64   `firestore:"amount" json:"amount"`
	BookedAt      time.Time `firestore:"bookedAt" json:"bookedAt"`
}

type RejectionFeedback struct {
	Email       string    `firestore:"email" json:"email"`
	TrainerName string    `firestore:"trainerName" json:"trainerName"`
	Feedback    string    `firestore:"feedback" json:"feedback"`
	RejectedAt  time.Time `firestore:"rejectedAt" json:"rejectedAt"`
}

func (a Application) IsApproved() bool { return a.Status == StatusApproved }

// CheckApprovable reports why a stored application cannot be approved.
func (a Application) CheckApprovable() error {
	if a.IsApproved() {
		return fmt.Errorf("%w: %s", ErrAlreadyApproved, a.Email)
	}
	return nil
}

// CheckRejectable refuses approved trainers; they are demoted instead.
func (a Application) CheckRejectable() error {
	if a.IsApproved() {
		return fmt.Errorf("%w: %s is an active trainer", ErrAlreadyApproved, a.Email)
	}
	return nil
}

func (a Application) FindSlot(id string) (Slot, bool) {
	for _, s := range a.Slots {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}

// RemoveSlot drops the slot with id and returns it.
func (a *Application) RemoveSlot(id string) (Slot, error) {
	for i, s := range a.Slots {
		if s.ID == id {
			a.Slots = append(a.Slots[:i:i], a.Slots[i+1:]...)
			return s, nil
		}
	}
	return Slot{}, fmt.Errorf("%w: slot %s", ErrSlotNotFound, id)
}

// UsesClass reports whether any remaining slot is linked to classID.
func (a Application) UsesClass(classID string) bool {
	for _, s := range a.Slots {
		if s.ClassID == classID {
			return true
		}
	}
	return false
}

// AddBooking appends b to the slot with slotID.
func (a *Application) AddBooking(slotID string, b Booking) (Slot, error) {
	for i := range a.Slots {
		if a.Slots[i].ID == slotID {
			a.Slots[i].Bookings = append(a.Slots[i].Bookings, b)
			return a.Slots[i], nil
		}
	}
	return Slot{}, fmt.Errorf("%w: slot %s", ErrSlotNotFound, slotID)
}

func NewRejection(a Application, feedback string, at time.Time) RejectionFeedback {
	return RejectionFeedback{
		Email:       a.Email,
		TrainerName: a.FullName,
		Feedback:    feedback,
		RejectedAt:  at,
	}
}

type ApplyInput struct {
	FullName      string            `json:"fullName" validate:"required,max=120"`
	Email         string            `json:"email" validate:"required,email,docid"`
	Age           int               `json:"age" validate:"gte=0,lte=120"`
	ProfileImage  string            `json:"profileImage,omitempty" validate:"omitempty,url"`
	Skills        []string          `json:"skills" validate:"max=20,dive,max=60"`
	AvailableDays []string          `json:"availableDays" validate:"max=7,dive,weekday"`
	AvailableTime string            `json:"availableTime" validate:"max=60"`
	Experience    string            `json:"experience" validate:"max=2000"`
	OtherInfo     string            `json:"otherInfo" validate:"max=2000"`
	SocialLinks   map[string]string `json:"socialLinks,omitempty" validate:"max=10"`
}

func (in *ApplyInput) Trim() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = utils.NormalizeEmail(in.Email)
	in.ProfileImage = strings.TrimSpace(in.ProfileImage)
	in.Skills = utils.Compact(in.Skills)
	in.AvailableDays = utils.Compact(in.AvailableDays)
	in.AvailableTime = strings.TrimSpace(in.AvailableTime)
	in.Experience = strings.TrimSpace(in.Experience)
	in.OtherInfo = strings.TrimSpace(in.OtherInfo)
}

type RejectInput struct {
	Feedback string `json:"feedback" validate:"max=2000"`
}
