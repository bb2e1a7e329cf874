package payment

import (
	"math"
	"strings"
	"time"

	"fitness-tracker/backend/internal/utils"
)

const (
	GatewayStatusSucceeded  = "succeeded"
	GatewayStatusUnverified = "unverified"
)

// Record is one paid booking, keyed by the gateway transaction id.
type Record struct {
	TransactionID string    `firestore:"transactionId" json:"transactionId"`
	SlotID        string    `firestore:"slotId" json:"slotId"`
	SlotName      string    `firestore:"slotName" json:"slotName"`
	TrainerID     string    `firestore:"trainerId" json:"trainerId"`
	TrainerName   string    `firestore:"trainerName" json:"trainerName"`
	ClassID       string    `firestore:"classId" json:"classId"`
	ClassName     string    `firestore:"className" json:"className"`
	StudentEmail  string    `firestore:"studentEmail" json:"studentEmail"`
	StudentName   string    `firestore:"studentName" json:"studentName"`
	Amount        float64   `firestore:"amount" json:"amount"`
	Currency      string    `firestore:"currency" json:"currency"`
	GatewayStatus string    `firestore:"gatewayStatus" json:"gatewayStatus"`
	PaidAt        time.Time `firestore:"paidAt" json:"paidAt"`
}

type RecordInput struct {
	TransactionID string  `json:"transactionId" validate:"required,max=255,docid"`
	SlotID        string  `json:"slotId" validate:"required,docid"`
	SlotName      string  `json:"slotName" validate:"max=120"`
	TrainerID     string  `json:"trainerId" validate:"required,docid"`
	TrainerName   string  `json:"trainerName" validate:"max=120"`
	ClassID       string  `json:"classId" validate:"docid"`
	ClassName     string  `json:"className" validate:"max=120"`
	StudentEmail  string  `json:"studentEmail" validate:"required,email"`
	StudentName   string  `json:"studentName" validate:"max=120"`
	Amount        float64 `json:"price" validate:"gt=0"`
}

func (in *RecordInput) Trim() {
	in.TransactionID = strings.TrimSpace(in.TransactionID)
	in.SlotID = strings.TrimSpace(in.SlotID)
	in.SlotName = strings.TrimSpace(in.SlotName)
	in.TrainerID = strings.TrimSpace(in.TrainerID)
	in.TrainerName = strings.TrimSpace(in.TrainerName)
	in.ClassID = strings.TrimSpace(in.ClassID)
	in.ClassName = strings.TrimSpace(in.ClassName)
	in.StudentEmail = utils.NormalizeEmail(in.StudentEmail)
	in.StudentName = strings.TrimSpace(in.StudentName)
}

type IntentInput struct {
	Price float64 `json:"price" validate:"gt=0"`
}

// ToCents converts a dollar amount to the gateway's minor unit.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Intent is the gateway's view of a payment intent.
type Intent struct {
	ID           string `json:"paymentIntentId"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"-"`
	Currency     string `json:"-"`
	Status       string `json:"-"`
}

// Event is a verified gateway webhook event.
type Event struct {
	ID         string    `firestore:"id" json:"id"`
	Type       string    `firestore:"type" json:"type"`
	IntentID   string    `firestore:"intentId,omitempty" json:"intentId,omitempty"`
	ReceivedAt time.Time `firestore:"receivedAt" json:"receivedAt"`
}
