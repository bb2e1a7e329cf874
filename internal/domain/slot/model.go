package slot

import (
	"strings"

	"fitness-tracker/backend/internal/domain/trainer"
)

type Input struct {
	SlotName  string `json:"slotName" validate:"max=120"`
	SlotTime  string `json:"slotTime" validate:"max=60"`
	Day       string `json:"day" validate:"required,weekday"`
	ClassID   string `json:"classId" validate:"required,docid"`
	OtherInfo string `json:"otherInfo" validate:"max=1000"`
}

func (in *Input) Trim() {
	in.SlotName = strings.TrimSpace(in.SlotName)
	in.SlotTime = strings.TrimSpace(in.SlotTime)
	in.Day = strings.TrimSpace(in.Day)
	in.ClassID = strings.TrimSpace(in.ClassID)
	in.OtherInfo = strings.TrimSpace(in.OtherInfo)
}

// Template is what the add-slot form is prefilled with.
type Template struct {
	FullName      string   `json:"fullName"`
	Email         string   `json:"email"`
	AvailableDays []string `json:"availableDays"`
	AvailableTime string   `json:"availableTime"`
	Skills        []string `json:"skills"`
	ProfileImage  string   `json:"profileImage,omitempty"`
}

func TemplateFrom(a trainer.Application) Template {
	return Template{
		FullName:      a.FullName,
		Email:         a.Email,
		AvailableDays: a.AvailableDays,
		AvailableTime: a.AvailableTime,
		Skills:        a.Skills,
		ProfileImage:  a.ProfileImage,
	}
}

// Details is a slot together with the trainer offering it.
type Details struct {
	trainer.Slot
	TrainerID    string `json:"trainerId"`
	TrainerName  string `json:"trainerName"`
	TrainerEmail string `json:"trainerEmail"`
	TrainerImage string `json:"trainerImage,omitempty"`
}
