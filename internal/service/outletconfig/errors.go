package outletconfig

import "errors"

var (
	// ErrOutletNotFound возвращается, когда заведение не найдено
	ErrOutletNotFound = errors.New("outlet not found")

	// ErrAccessDenied возвращается, когда у вызывающего нет прав на заведение
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
