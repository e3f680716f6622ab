package domain

// CouponStatus состояние одноразового купона пациента
type CouponStatus string

const (
	CouponEligible CouponStatus = "eligible"
	CouponUsed     CouponStatus = "used"
)

// Patient пациент
type Patient struct {
	ID           int64
	UserID       int64
	FullName     string
	Email        string
	CouponStatus CouponStatus
}

// HasCoupon returns true if the one-time coupon has not been consumed yet
func (p *Patient) HasCoupon() bool {
	return p.CouponStatus == CouponEligible
}
