package newsletter

import (
	"strings"
	"time"

	"fitness-tracker/backend/internal/utils"
)

type Subscriber struct {
	Email        string    `firestore:"email" json:"email"`
	Name         string    `firestore:"name" json:"name"`
	SubscribedAt time.Time `firestore:"subscribedAt" json:"subscribedAt"`
}

type SubscribeInput struct {
	Name  string `json:"name" validate:"required,max=120"`
	Email string `json:"email" validate:"required,email,docid"`
}

func (in *SubscribeInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = utils.NormalizeEmail(in.Email)
}
