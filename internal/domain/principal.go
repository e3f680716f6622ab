package domain

// PrincipalKind роль аутентифицированного пользователя
type PrincipalKind int

const (
	PrincipalUnknown PrincipalKind = iota
	PrincipalPatient
	PrincipalDoctor
)

func (k PrincipalKind) String() string {
	switch k {
	case PrincipalPatient:
		return "patient"
	case PrincipalDoctor:
		return "doctor"
	default:
		return "unknown"
	}
}

// Principal пользователь запроса: пациент, врач или неизвестный
// Определяется один раз на входе запроса
type Principal struct {
	Kind      PrincipalKind
	UserID    int64
	PatientID int64
	DoctorID  int64
}

// NewPatientPrincipal создает principal пациента
func NewPatientPrincipal(userID, patientID int64) Principal {
	return Principal{Kind: PrincipalPatient, UserID: userID, PatientID: patientID}
}

// NewDoctorPrincipal создает principal врача
func NewDoctorPrincipal(userID, doctorID int64) Principal {
	return Principal{Kind: PrincipalDoctor, UserID: userID, DoctorID: doctorID}
}

// NewUnknownPrincipal создает principal без роли
func NewUnknownPrincipal(userID int64) Principal {
	return Principal{Kind: PrincipalUnknown, UserID: userID}
}

// AsPatient возвращает ID пациента, если principal является пациентом
func (p Principal) AsPatient() (int64, bool) {
	if p.Kind != PrincipalPatient {
		return 0, false
	}
	return p.PatientID, true
}

// AsDoctor возвращает ID врача, если principal является врачом
func (p Principal) AsDoctor() (int64, bool) {
	if p.Kind != PrincipalDoctor {
		return 0, false
	}
	return p.DoctorID, true
}

// PatientRef ссылка на пациента для записи, nil если principal не пациент
func (p Principal) PatientRef() *int64 {
	if id, ok := p.AsPatient(); ok {
		return &id
	}
	return nil
}
