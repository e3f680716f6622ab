package domain

import "github.com/shopspring/decimal"

// Doctor врач, принимающий пациентов
type Doctor struct {
	ID                int64
	UserID            int64
	FullName          string
	Specialty         string
	BasePrice         decimal.NullDecimal
	Recommended       bool
	AcceptingPatients bool
}

// DoctorFilter параметры поиска врачей
// Query ищет по подстроке в имени без учёта регистра, Specialty сравнивается целиком без учёта регистра
type DoctorFilter struct {
	Query     string
	Specialty string
}

// ConsultationPrice базовая стоимость консультации, 0.00 если не указана
func (d *Doctor) ConsultationPrice() decimal.Decimal {
	if !d.BasePrice.Valid {
		return decimal.Zero
	}
	return d.BasePrice.Decimal
}
