package userservice

// User модель пользователя из UserService (клиент или сотрудник)
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	IsStaff bool   `json:"is_staff"`
}

// CapabilityResponse ответ проверки права пользователя
type CapabilityResponse struct {
	Granted bool `json:"granted"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
