package update_order_status

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidStatus возвращается при неизвестном целевом статусе
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidTransition возвращается, когда переход статусов недопустим
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrAccessDenied возвращается, когда вызывающий не управляет этим заведением
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
