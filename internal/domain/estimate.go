package domain

import (
	"fmt"
	"math"
	"time"
)

// ParallelismFactor доля работы сверх "бутылочного горлышка", которая
// добавляется к сроку последовательно: кухня готовит позиции параллельно,
// поэтому только 25% лишнего объема удлиняет заказ
const ParallelismFactor = 0.25

// PrepProfile describes the preparation profile of one order line item
type PrepProfile struct {
	PrepTimeMinutes *int
	IsReadyToPick   bool
	Quantity        int
}

// EstimateParams parameterizes the completion-time model. The two call sites
// (order creation and status update) historically use different fallbacks;
// they are kept as named presets instead of being silently unified.
type EstimateParams struct {
	// DefaultPrepMinutes время приготовления позиции без заданного prep time
	DefaultPrepMinutes int

	// ReadyToPickPrepMinutes вклад предупакованной позиции
	ReadyToPickPrepMinutes int

	// BottleneckFloorMinutes нижняя граница "бутылочного горлышка"
	BottleneckFloorMinutes int

	// OpsBufferMinutes операционный буфер (упаковка, выдача)
	OpsBufferMinutes int

	// ReadyOnlyOpsBufferMinutes буфер для заказа целиком из готовых позиций
	// (применяется, когда bottleneck получился нулевым)
	ReadyOnlyOpsBufferMinutes int
}

// CreationEstimateParams параметры оценки при создании заказа
var CreationEstimateParams = EstimateParams{
	DefaultPrepMinutes:        10,
	ReadyToPickPrepMinutes:    0,
	BottleneckFloorMinutes:    0,
	OpsBufferMinutes:          5,
	ReadyOnlyOpsBufferMinutes: 2,
}

// StatusUpdateEstimateParams параметры пересчета оценки при подтверждении
// заказа. Намеренно расходятся с параметрами создания: кухня уже под
// нагрузкой, поэтому ниже 15 минут срок не опускается
var StatusUpdateEstimateParams = EstimateParams{
	DefaultPrepMinutes:        15,
	ReadyToPickPrepMinutes:    2,
	BottleneckFloorMinutes:    15,
	OpsBufferMinutes:          0,
	ReadyOnlyOpsBufferMinutes: 0,
}

// Estimate is the computed completion-time estimate for an order
type Estimate struct {
	DurationMinutes int
	Bottleneck      int
	VolumeDelay     int
	OpsBuffer       int
}

// EstimateCompletion computes the order completion time with the
// "bottleneck + volume" capacity model:
//
//  1. Каждая позиция вносит свое время приготовления (готовые к выдаче -
//     ReadyToPickPrepMinutes, без заданного prep time - DefaultPrepMinutes).
//  2. Bottleneck - самая долгая одиночная позиция, нижняя граница срока.
//  3. Работа сверх bottleneck добавляет только 25% своего объема
//     (параллельные станции кухни).
//  4. Сверху добавляется операционный буфер.
func EstimateCompletion(items []PrepProfile, p EstimateParams) Estimate {
	bottleneck := p.BottleneckFloorMinutes
	totalWork := 0

	for _, item := range items {
		prep := singleItemPrep(item, p)

		if prep > bottleneck {
			bottleneck = prep
		}

		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		totalWork += prep * qty
	}

	extraWork := totalWork - bottleneck
	if extraWork < 0 {
		extraWork = 0
	}
	volumeDelay := int(math.Ceil(float64(extraWork) * ParallelismFactor))

	opsBuffer := p.OpsBufferMinutes
	if bottleneck == 0 {
		opsBuffer = p.ReadyOnlyOpsBufferMinutes
	}

	return Estimate{
		DurationMinutes: bottleneck + volumeDelay + opsBuffer,
		Bottleneck:      bottleneck,
		VolumeDelay:     volumeDelay,
		OpsBuffer:       opsBuffer,
	}
}

func singleItemPrep(item PrepProfile, p EstimateParams) int {
	if item.IsReadyToPick {
		return p.ReadyToPickPrepMinutes
	}
	if item.PrepTimeMinutes == nil || *item.PrepTimeMinutes <= 0 {
		return p.DefaultPrepMinutes
	}
	return *item.PrepTimeMinutes
}

// TargetTime returns the absolute completion timestamp
func (e Estimate) TargetTime(now time.Time) time.Time {
	return now.Add(time.Duration(e.DurationMinutes) * time.Minute)
}

// DisplayRange formats the estimate as a range for the customer ("18-23 mins")
func (e Estimate) DisplayRange() string {
	return fmt.Sprintf("%d-%d mins", e.DurationMinutes, e.DurationMinutes+5)
}

// DisplayApprox formats the estimate as an approximation ("~18 mins")
func (e Estimate) DisplayApprox() string {
	return fmt.Sprintf("~%d mins", e.DurationMinutes)
}
