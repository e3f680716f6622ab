package preview_price

import previewPrice "github.com/m04kA/SMC-AppointmentService/internal/usecase/preview_price"

// ApplyCouponRequest тело POST запроса предпросмотра
type ApplyCouponRequest struct {
	ApplyCoupon bool `json:"applyCoupon"`
}

// PreviewResponse HTTP response model
type PreviewResponse struct {
	DoctorID      int64  `json:"doctorId"`
	DoctorName    string `json:"doctorName"`
	Specialty     string `json:"specialty"`
	RequesterName string `json:"requesterName"`
	VisitReason   string `json:"visitReason"`
	RequestedDate string `json:"requestedDate"`
	RequestedTime string `json:"requestedTime"`

	BasePrice  string `json:"basePrice"`
	Commission string `json:"commission"`
	Discount   string `json:"discount"`
	FinalPrice string `json:"finalPrice"`

	CouponApplied   bool `json:"couponApplied"`
	CouponAvailable bool `json:"couponAvailable"`
	CouponRejected  bool `json:"couponRejected,omitempty"`
}

func toResponse(resp *previewPrice.Response) *PreviewResponse {
	return &PreviewResponse{
		DoctorID:        resp.Booking.DoctorID,
		DoctorName:      resp.DoctorName,
		Specialty:       resp.Specialty,
		RequesterName:   resp.Booking.RequesterName,
		VisitReason:     resp.Booking.VisitReason,
		RequestedDate:   resp.Booking.RequestedDate,
		RequestedTime:   resp.Booking.RequestedTime.String(),
		BasePrice:       resp.BasePrice,
		Commission:      resp.Commission,
		Discount:        resp.Discount,
		FinalPrice:      resp.FinalPrice,
		CouponApplied:   resp.CouponApplied,
		CouponAvailable: resp.CouponAvailable,
		CouponRejected:  resp.CouponRejected,
	}
}
