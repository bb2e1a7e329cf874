package stats

import "fitness-tracker/backend/internal/domain/payment"

// FinancialSummary is the admin dashboard's money overview.
type FinancialSummary struct {
	TotalBalance     float64          `json:"totalBalance"`
	TotalSubscribers int              `json:"totalSubscribers"`
	TotalPaidMembers int              `json:"totalPaidMembers"`
	RecentPayments   []payment.Record `json:"recentPayments"`
}
