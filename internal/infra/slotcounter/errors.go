package slotcounter

import "errors"

var (
	// ErrSlotFull возвращается, когда вместимость слота исчерпана
	ErrSlotFull = errors.New("slotcounter: slot is full")

	// ErrUnavailable возвращается при недоступности хранилища счетчиков
	// Вызывающий решает сам, деградировать мягко или отклонять запрос
	ErrUnavailable = errors.New("slotcounter: counter storage unavailable")
)
