package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// PendingBookingState состояние незавершённого бронирования
type PendingBookingState string

const (
	PendingDraft         PendingBookingState = "draft"
	PendingPriceComputed PendingBookingState = "price_computed"
	PendingSubmitted     PendingBookingState = "submitted"
)

// PendingBooking черновик записи, живёт только в хранилище сессий до оплаты
type PendingBooking struct {
	RequesterName     string           `json:"requesterName"`
	DateOfBirth       string           `json:"dateOfBirth"`
	NationalID        string           `json:"nationalId"`
	Phone             string           `json:"phone"`
	ConsultationNotes string           `json:"consultationNotes"`
	VisitReason       string           `json:"visitReason"`
	Insurer           string           `json:"insurer"`
	RequestedTime     types.TimeString `json:"requestedTime"`
	RequestedDate     string           `json:"requestedDate"` // YYYY-MM-DD
	DoctorID          int64            `json:"doctorId"`
	PatientID         *int64           `json:"patientId,omitempty"`

	Price         string `json:"price"`
	Discount      string `json:"discount"`
	CouponApplied bool   `json:"couponApplied"`

	State             PendingBookingState `json:"state"`
	CheckoutSessionID string              `json:"checkoutSessionId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Date разбирает запрошенную дату
func (b *PendingBooking) Date() (time.Time, error) {
	return time.Parse(DateFormat, b.RequestedDate)
}

// ApplyQuote сохраняет рассчитанную цену в черновике
// Изменение цены или скидки аннулирует ранее созданную сессию оплаты:
// черновик возвращается в PendingPriceComputed и должен быть отправлен заново.
func (b *PendingBooking) ApplyQuote(q PriceQuote) {
	price := FormatMoney(q.FinalPrice)
	discount := FormatMoney(q.Discount)
	changed := b.Price != price || b.Discount != discount
	b.Price = price
	b.Discount = discount
	if changed || b.State == PendingDraft || b.State == "" {
		b.State = PendingPriceComputed
		b.CheckoutSessionID = ""
	}
}

// Submitted сообщает, что для черновика создана сессия оплаты по текущей цене
func (b *PendingBooking) Submitted() bool {
	return b.State == PendingSubmitted && b.CheckoutSessionID != ""
}

// FinalPrice возвращает итоговую цену, ErrInvalidPrice если строка повреждена
func (b *PendingBooking) FinalPrice() (decimal.Decimal, error) {
	return ParseMoney(b.Price)
}

// Slot ключ уникальности записи, которая будет создана из черновика
func (b *PendingBooking) Slot() (AppointmentSlot, error) {
	date, err := b.Date()
	if err != nil {
		return AppointmentSlot{}, err
	}
	return AppointmentSlot{
		DoctorID:  b.DoctorID,
		PatientID: b.PatientID,
		Date:      date,
		Time:      b.RequestedTime,
	}, nil
}
