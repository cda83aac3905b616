package domain

import "time"

// DaySchedule represents the operating hours of an outlet for one weekday
type DaySchedule struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "HH:MM"
	CloseTime *string `json:"closeTime,omitempty"` // "HH:MM"
}

// WeeklySchedule holds the per-weekday operating hours of an outlet
type WeeklySchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForWeekday returns the schedule entry for the given weekday
func (s WeeklySchedule) ForWeekday(day time.Weekday) DaySchedule {
	switch day {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// Outlet represents the outlet configuration consumed by the slot generator
// and the order flow. CRUD over outlets lives in a separate service; this one
// only reads the fields below and flips the live-open switch.
type Outlet struct {
	ID   int64
	Name string

	// IsManuallyOpen мастер-переключатель: открыт/закрыт прямо сейчас,
	// независимо от недельного расписания
	IsManuallyOpen bool

	// AutoConfirm новые заказы сразу уходят на кухню без ручного подтверждения
	AutoConfirm bool

	// TimeZone локальная тайм-зона заведения (IANA), по умолчанию IST
	TimeZone string

	Schedule WeeklySchedule

	// SlotIntervalMinutes шаг слотов, nil = дефолт
	SlotIntervalMinutes *int

	// MaxOrdersPerSlot вместимость одного слота, nil = дефолт
	MaxOrdersPerSlot *int

	// ScheduledOrdersEnabled информационный флаг: заведение принимает
	// заказы на конкретный слот (а не только ASAP)
	ScheduledOrdersEnabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotInterval returns the slot interval in minutes, falling back to the default
func (o *Outlet) SlotInterval() int {
	if o.SlotIntervalMinutes == nil || *o.SlotIntervalMinutes <= 0 {
		return DefaultSlotIntervalMinutes
	}
	return *o.SlotIntervalMinutes
}

// MaxPerSlot returns the per-slot order capacity, falling back to the default
func (o *Outlet) MaxPerSlot() int {
	if o.MaxOrdersPerSlot == nil || *o.MaxOrdersPerSlot <= 0 {
		return DefaultMaxOrdersPerSlot
	}
	return *o.MaxOrdersPerSlot
}

// Location resolves the outlet time zone, falling back to the default zone
// for unknown or empty names
func (o *Outlet) Location() *time.Location {
	name := o.TimeZone
	if name == "" {
		name = DefaultTimeZone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		loc, err = time.LoadLocation(DefaultTimeZone)
		if err != nil {
			return time.UTC
		}
	}
	return loc
}
