package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes = 15
	DefaultMaxOrdersPerSlot    = 20
	DefaultTimeZone            = "Asia/Kolkata"
)

// Slot generation policy
const (
	// SlotBufferMinutes сдвиг "сейчас" вперед перед генерацией слотов:
	// кухня не успеет принять заказ на слот раньше, чем через 10 минут
	SlotBufferMinutes = 10

	// HighTrafficHeadroom слот считается высоконагруженным, когда свободных
	// мест остается меньше этого количества
	HighTrafficHeadroom = 5

	// FallbackOpenTime / FallbackCloseTime расписание по умолчанию, если
	// у заведения не заполнен день
	FallbackOpenTime  = "09:00"
	FallbackCloseTime = "22:00"
)

// Business validation constants
const (
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 180
	MinOrdersPerSlot       = 1
	MaxOrdersPerSlotLimit  = 200
	MaxInstructionsLength  = 500
)

// Pricing constants
const (
	TaxRate               = 0.08
	LoyaltyDiscountCap    = 0.10 // максимум 10% от суммы заказа
	LoyaltyCoinValue      = 0.01 // стоимость одного балла в рупиях
	LoyaltyPointsPerRupee = 1    // начисление: 1 балл за рупию итоговой суммы
	DefaultPaymentMethod  = "UPI"
	OrderNumberPrefix     = "ZOR"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// User roles (прокидываются слоем аутентификации в заголовках)
const (
	RoleCustomer       = "CUSTOMER"
	RoleAdmin          = "ADMIN"
	RoleSuperAdmin     = "SUPER_ADMIN"
	RolePartnerManager = "PARTNER_MANAGER"
	RolePartnerStaff   = "PARTNER_STAFF"
)

// ActiveStatuses статусы заказов, занимающих место в слоте
// Используются при подсчете занятости слотов
var ActiveStatuses = []OrderStatus{
	StatusNew,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
}

// CancellableStatuses статусы, из которых заказ может быть отменен
var CancellableStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
}
