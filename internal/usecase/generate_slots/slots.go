package generate_slots

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

// generateDaySlots генерирует список слотов самовывоза на сегодняшний день.
// now должно быть в локальном времени заведения. Сначала к now прибавляется
// буфер в 10 минут: слот нельзя предлагать раньше, чем кухня реально сможет
// взять заказ в работу. День недели и "текущее время" берутся уже от
// сдвинутого момента.
func generateDaySlots(outlet *domain.Outlet, now time.Time, includePast bool) []types.TimeString {
	buffered := now.Add(domain.SlotBufferMinutes * time.Minute)

	// 1. Расписание на сегодня по дню недели
	day := outlet.Schedule.ForWeekday(buffered.Weekday())

	openTime := domain.FallbackOpenTime
	closeTime := domain.FallbackCloseTime
	todayClosed := false

	if !day.IsOpen {
		todayClosed = true
	} else {
		if day.OpenTime != nil && *day.OpenTime != "" {
			openTime = *day.OpenTime
		}
		if day.CloseTime != nil && *day.CloseTime != "" {
			closeTime = *day.CloseTime
		}
	}

	// 2. Мастер-переключатель: вручную открытое заведение считается открытым,
	// что бы ни говорило недельное расписание
	if outlet.IsManuallyOpen {
		todayClosed = false
	}

	if todayClosed {
		return []types.TimeString{}
	}

	openH, openM := splitClock(openTime)
	closeH, closeM := splitClock(closeTime)

	// 3. Ночной график: если закрытие не позже открытия (включая "00:00"-"00:00"),
	// считаем, что заведение закрывается на следующий день
	if closeH <= openH {
		closeH += 24
	}

	currentHour := buffered.Hour()
	currentMinute := buffered.Minute()

	// 4. Раннее открытие: оператор включил заведение до начала смены -
	// начинаем предлагать слоты прямо сейчас, не дожидаясь расписания
	if outlet.IsManuallyOpen && currentHour < openH {
		openH = currentHour
		openM = currentMinute
	}

	interval := outlet.SlotInterval()

	// 5. Начало окна генерации
	var startHour, startMinute int

	if includePast {
		// Вид оператора: весь день с начала работы
		startHour = openH
		startMinute = roundUpToInterval(openM, interval)
		if startMinute >= 60 {
			startHour++
			startMinute = 0
		}
	} else {
		// Вид покупателя: только будущие слоты
		startHour = currentHour
		startMinute = roundUpToInterval(currentMinute, interval)
		if startMinute >= 60 {
			startHour++
			startMinute = 0
		}

		// Если текущее время раньше открытия - начинаем с открытия
		if startHour < openH || (startHour == openH && startMinute < openM) {
			startHour = openH
			startMinute = roundUpToInterval(openM, interval)
			if startMinute >= 60 {
				startHour++
				startMinute = 0
			}
		}
	}

	// 6. Окно уже закрыто
	if startHour > closeH || (startHour == closeH && startMinute >= closeM) {
		return []types.TimeString{}
	}

	// 7. Генерируем слоты с шагом interval до закрытия (не включая границу).
	// Для ночного графика час может превышать 23, поэтому при форматировании
	// берем остаток от деления на 24
	slots := make([]types.TimeString, 0)
	h := startHour
	m := startMinute

	for h < closeH || (h == closeH && m < closeM) {
		slots = append(slots, types.TimeString(fmt.Sprintf("%02d:%02d", h%24, m)))

		m += interval
		if m >= 60 {
			h++
			m = 0
		}
	}

	return slots
}

// countSlotOccupancy группирует активные заказы по выбранному слоту самовывоза.
// Ключ приводится к нижнему регистру, чтобы исторические значения с суффиксами
// вида "AM"/"PM" попадали в один счетчик
func countSlotOccupancy(orders []*domain.Order) map[string]int {
	counts := make(map[string]int, len(orders))

	for _, o := range orders {
		if !o.IsActive() || o.PickupSlot == nil {
			continue
		}
		counts[strings.ToLower(string(*o.PickupSlot))]++
	}

	return counts
}

// annotateSlots вычисляет занятость каждого слота
func annotateSlots(times []types.TimeString, counts map[string]int, maxPerSlot int) []Slot {
	result := make([]Slot, len(times))

	for i, t := range times {
		count := counts[strings.ToLower(string(t))]

		remaining := maxPerSlot - count
		if remaining < 0 {
			remaining = 0
		}

		result[i] = Slot{
			Time:          t,
			Available:     count < maxPerSlot,
			Remaining:     remaining,
			IsHighTraffic: count >= maxPerSlot-domain.HighTrafficHeadroom,
		}
	}

	return result
}

// splitClock разбирает строку "HH:MM" на час и минуту
func splitClock(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}

	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}

// roundUpToInterval округляет минуту вверх до ближайшего кратного интервалу значения
func roundUpToInterval(minute, interval int) int {
	if interval <= 0 {
		return minute
	}
	return ((minute + interval - 1) / interval) * interval
}
