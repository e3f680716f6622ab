package notifier

import "time"

// AppointmentFinalized событие о создании записи после оплаты
type AppointmentFinalized struct {
	AppointmentID   int64     `json:"appointmentId"`
	DoctorID        int64     `json:"doctorId"`
	PatientID       *int64    `json:"patientId,omitempty"`
	AppointmentDate string    `json:"appointmentDate"`
	AppointmentTime string    `json:"appointmentTime"`
	Price           string    `json:"price"`
	CouponApplied   bool      `json:"couponApplied"`
	OccurredAt      time.Time `json:"occurredAt"`
}
