package preview_price

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request запрос предпросмотра цены
type Request struct {
	SessionID   string
	Principal   domain.Principal
	ApplyCoupon bool // Повторная отправка формы с купоном
}

// Response предпросмотр записи и её стоимости
type Response struct {
	Booking    *domain.PendingBooking
	DoctorName string
	Specialty  string
	BasePrice  string
	Commission string
	Discount   string
	FinalPrice string

	CouponApplied   bool
	CouponAvailable bool // Купон пациента ещё не использован и не применён
	CouponRejected  bool // Запрошено применение купона, но он недоступен
}
