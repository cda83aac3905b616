package create_order

import "errors"

var (
	// ErrMenuItemNotAvailable возвращается, когда позиция не найдена или снята с продажи
	ErrMenuItemNotAvailable = errors.New("menu item not found or unavailable")

	// ErrOutletNotFound возвращается, когда заведение не найдено
	ErrOutletNotFound = errors.New("outlet not found")

	// ErrOutletUnknown возвращается, когда заведение не удалось определить
	// ни из запроса, ни из позиций заказа
	ErrOutletUnknown = errors.New("outlet could not be determined")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrSlotNotAvailable возвращается, когда выбранный слот заполнен
	ErrSlotNotAvailable = errors.New("pickup slot is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
