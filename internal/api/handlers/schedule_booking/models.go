package schedule_booking

// ScheduleRequest HTTP request model формы записи
type ScheduleRequest struct {
	RequesterName     string `json:"requesterName"`
	DateOfBirth       string `json:"dateOfBirth"`
	NationalID        string `json:"nationalId"`
	Phone             string `json:"phone"`
	ConsultationNotes string `json:"consultationNotes"`
	VisitReason       string `json:"visitReason"`
	Insurer           string `json:"insurer"`
	RequestedDate     string `json:"requestedDate"` // "2025-01-10"
	RequestedTime     string `json:"requestedTime"` // "09:00"
}
