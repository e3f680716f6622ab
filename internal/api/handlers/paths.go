package handlers

// Пути, на которые клиент возвращается после ошибок сценария записи
const (
	PathHome    = "/"
	PathDoctors = "/doctors"
	PathPreview = "/api/v1/booking/preview"
)
