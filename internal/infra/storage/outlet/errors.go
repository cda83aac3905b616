package outlet

import "errors"

var (
	// ErrOutletNotFound возвращается, когда заведение не найдено
	ErrOutletNotFound = errors.New("outlet.repository: outlet not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("outlet.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("outlet.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("outlet.repository: failed to scan row")

	// ErrInvalidSchedule возвращается при некорректном JSON расписания
	ErrInvalidSchedule = errors.New("outlet.repository: invalid schedule payload")
)
