package generate_slots

import (
	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

// Request модель запроса на получение слотов самовывоза
type Request struct {
	OutletID    int64 // ID заведения
	IncludePast bool  // true - полный список слотов на день (вид оператора), false - только будущие (вид покупателя)
}

// Response модель ответа со списком слотов
type Response struct {
	OutletID int64  // ID заведения
	Slots    []Slot // Список слотов с занятостью
}

// Slot модель слота самовывоза
type Slot struct {
	Time          types.TimeString // Время слота, например "14:30"
	Available     bool             // Есть ли свободная вместимость
	Remaining     int              // Сколько заказов еще помещается в слот
	IsHighTraffic bool             // Слот близок к заполнению
}
