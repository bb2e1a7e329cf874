package review

import (
	"strings"
	"time"

	"fitness-tracker/backend/internal/utils"
)

type Review struct {
	ID            string    `firestore:"-" json:"id"`
	TrainerID     string    `firestore:"trainerId" json:"trainerId"`
	SlotID        string    `firestore:"slotId,omitempty" json:"slotId,omitempty"`
	Rating        int       `firestore:"rating" json:"rating"`
	Comment       string    `firestore:"comment" json:"comment"`
	ReviewerName  string    `firestore:"reviewerName" json:"reviewerName"`
	ReviewerEmail string    `firestore:"reviewerEmail" json:"reviewerEmail"`
	ReviewerImage string    `firestore:"reviewerImage,omitempty" json:"reviewerImage,omitempty"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
}

type CreateInput struct {
	TrainerID     string `json:"trainerId" validate:"required,docid"`
	SlotID        string `json:"slotId" validate:"docid"`
	Rating        int    `json:"rating" validate:"min=1,max=5"`
	Comment       string `json:"comment" validate:"max=2000"`
	ReviewerName  string `json:"reviewerName" validate:"max=120"`
	ReviewerEmail string `json:"reviewerEmail" validate:"required,email"`
	ReviewerImage string `json:"reviewerImage,omitempty" validate:"omitempty,url"`
}

func (in *CreateInput) Trim() {
	in.TrainerID = strings.TrimSpace(in.TrainerID)
	in.SlotID = strings.TrimSpace(in.SlotID)
	in.Comment = strings.TrimSpace(in.Comment)
	in.ReviewerName = strings.TrimSpace(in.ReviewerName)
	in.ReviewerEmail = utils.NormalizeEmail(in.ReviewerEmail)
	in.ReviewerImage = strings.TrimSpace(in.ReviewerImage)
}
