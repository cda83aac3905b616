package generate_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/pkg/ptr"
	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

func openDay(open, close string) domain.DaySchedule {
	return domain.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr(open),
		CloseTime: ptr.Ptr(close),
	}
}

func allWeek(day domain.DaySchedule) domain.WeeklySchedule {
	return domain.WeeklySchedule{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
		Saturday:  day,
		Sunday:    day,
	}
}

func testOutlet(schedule domain.WeeklySchedule, interval int) *domain.Outlet {
	return &domain.Outlet{
		ID:                  1,
		IsManuallyOpen:      true,
		Schedule:            schedule,
		SlotIntervalMinutes: ptr.Ptr(interval),
	}
}

// Понедельник 2025-03-10
func mondayAt(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestGenerateDaySlots_BufferAndRounding(t *testing.T) {
	// 14:07 + 10 минут буфера = 14:17, округление вверх до шага 30 = 14:30
	outlet := testOutlet(allWeek(openDay("09:00", "22:00")), 30)

	slots := generateDaySlots(outlet, mondayAt(14, 7), false)

	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("14:30"), slots[0])
	assert.Equal(t, types.TimeString("21:30"), slots[len(slots)-1])

	// Слоты идут с точным шагом интервала
	for i := 1; i < len(slots); i++ {
		prev, _ := slots[i-1].TotalMinutes()
		curr, _ := slots[i].TotalMinutes()
		assert.Equal(t, 30, curr-prev, "slot %d", i)
	}
}

func TestGenerateDaySlots_ClosedDayCustomerView(t *testing.T) {
	outlet := testOutlet(allWeek(domain.DaySchedule{IsOpen: false}), 15)
	outlet.IsManuallyOpen = false

	slots := generateDaySlots(outlet, mondayAt(12, 0), false)

	assert.Empty(t, slots)
}

func TestGenerateDaySlots_ManualOpenOverridesClosedDay(t *testing.T) {
	// День закрыт по расписанию, но мастер-переключатель включен:
	// работаем по дефолтным часам 09:00-22:00
	outlet := testOutlet(allWeek(domain.DaySchedule{IsOpen: false}), 60)

	slots := generateDaySlots(outlet, mondayAt(12, 0), false)

	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("13:00"), slots[0])
	assert.Equal(t, types.TimeString("21:00"), slots[len(slots)-1])
}

func TestGenerateDaySlots_EarlyOpenOverride(t *testing.T) {
	// Оператор открыл заведение в 07:30, расписание с 09:00:
	// слоты начинаются от текущего момента, а не от расписания
	outlet := testOutlet(allWeek(openDay("09:00", "22:00")), 15)

	slots := generateDaySlots(outlet, mondayAt(7, 30), false)

	require.NotEmpty(t, slots)
	// 07:30 + 10 минут = 07:40, округление до шага 15 = 07:45
	assert.Equal(t, types.TimeString("07:45"), slots[0])
}

func TestGenerateDaySlots_BeforeOpenStartsAtOpen(t *testing.T) {
	outlet := testOutlet(allWeek(openDay("09:00", "22:00")), 15)
	outlet.IsManuallyOpen = true

	// 08:55 + 10 минут = 09:05 - уже после открытия, округление до 09:15
	slots := generateDaySlots(outlet, mondayAt(8, 55), false)

	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("09:15"), slots[0])
}

func TestGenerateDaySlots_Overnight(t *testing.T) {
	// Закрытие раньше открытия: окно тянется за полночь
	outlet := testOutlet(allWeek(openDay("22:00", "02:00")), 30)

	slots := generateDaySlots(outlet, mondayAt(22, 30), false)

	require.NotEmpty(t, slots)
	// 22:30 + 10 минут = 22:40, округление до 23:00
	assert.Equal(t, types.TimeString("23:00"), slots[0])
	assert.Contains(t, slots, types.TimeString("00:00"))
	assert.Contains(t, slots, types.TimeString("01:30"))
	assert.NotContains(t, slots, types.TimeString("02:00"))
}

func TestGenerateDaySlots_EqualOpenClose(t *testing.T) {
	// "00:00"-"00:00" трактуется как круглосуточное окно
	outlet := testOutlet(allWeek(openDay("00:00", "00:00")), 60)

	slots := generateDaySlots(outlet, mondayAt(1, 0), true)

	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("00:00"), slots[0])
	assert.Len(t, slots, 24)
}

func TestGenerateDaySlots_PastClosing(t *testing.T) {
	outlet := testOutlet(allWeek(openDay("09:00", "22:00")), 15)

	slots := generateDaySlots(outlet, mondayAt(22, 30), false)

	assert.Empty(t, slots)
}

func TestGenerateDaySlots_OperatorFullDayView(t *testing.T) {
	// Вид оператора: весь день с открытия, независимо от текущего времени
	outlet := testOutlet(allWeek(openDay("09:00", "22:00")), 30)

	slots := generateDaySlots(outlet, mondayAt(20, 0), true)

	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("21:30"), slots[len(slots)-1])
}

func TestGenerateDaySlots_DefaultInterval(t *testing.T) {
	outlet := testOutlet(allWeek(openDay("09:00", "10:00")), 0)
	outlet.SlotIntervalMinutes = nil

	slots := generateDaySlots(outlet, mondayAt(5, 0), true)

	// Дефолтный шаг 15 минут
	assert.Len(t, slots, 4)
}

func TestGenerateDaySlots_Idempotent(t *testing.T) {
	outlet := testOutlet(allWeek(openDay("09:00", "22:00")), 15)
	now := mondayAt(13, 42)

	first := generateDaySlots(outlet, now, false)
	second := generateDaySlots(outlet, now, false)

	assert.Equal(t, first, second)
}

func TestCountSlotOccupancy(t *testing.T) {
	slot := types.TimeString("12:00")
	other := types.TimeString("12:30")

	orders := []*domain.Order{
		{Status: domain.StatusConfirmed, PickupSlot: &slot},
		{Status: domain.StatusPreparing, PickupSlot: &slot},
		{Status: domain.StatusCancelled, PickupSlot: &slot}, // не считается
		{Status: domain.StatusReady, PickupSlot: &other},
		{Status: domain.StatusNew, PickupSlot: nil}, // без слота
	}

	counts := countSlotOccupancy(orders)

	assert.Equal(t, 2, counts["12:00"])
	assert.Equal(t, 1, counts["12:30"])
}

func TestAnnotateSlots_CapacityAndHighTraffic(t *testing.T) {
	times := []types.TimeString{"12:00", "12:30", "13:00"}

	counts := map[string]int{
		"12:00": 20, // полностью занят
		"12:30": 15, // высокая загрузка, но места есть
	}

	slots := annotateSlots(times, counts, 20)

	require.Len(t, slots, 3)

	assert.False(t, slots[0].Available)
	assert.Equal(t, 0, slots[0].Remaining)
	assert.True(t, slots[0].IsHighTraffic)

	assert.True(t, slots[1].Available)
	assert.Equal(t, 5, slots[1].Remaining)
	assert.True(t, slots[1].IsHighTraffic)

	assert.True(t, slots[2].Available)
	assert.Equal(t, 20, slots[2].Remaining)
	assert.False(t, slots[2].IsHighTraffic)
}
