package domain

import "time"

// RecommendationCheckout сессия оплаты подписки врача на рекомендацию
// Живёт в хранилище сессий от создания оплаты до возврата из шлюза
type RecommendationCheckout struct {
	DoctorID          int64     `json:"doctorId"`
	CheckoutSessionID string    `json:"checkoutSessionId"`
	AmountMinorUnits  int64     `json:"amountMinorUnits"`
	CreatedAt         time.Time `json:"createdAt"`
}
