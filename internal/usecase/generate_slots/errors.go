package generate_slots

import "errors"

var (
	// ErrOutletNotFound возвращается, когда заведение не найдено
	ErrOutletNotFound = errors.New("outlet not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
