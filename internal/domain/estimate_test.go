package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestEstimateCompletion_ReadyToPickOnly(t *testing.T) {
	items := []PrepProfile{
		{IsReadyToPick: true, Quantity: 1},
	}

	est := EstimateCompletion(items, CreationEstimateParams)

	assert.Equal(t, 0, est.Bottleneck)
	assert.Equal(t, 0, est.VolumeDelay)
	assert.Equal(t, 2, est.OpsBuffer)
	assert.Equal(t, 2, est.DurationMinutes)
}

func TestEstimateCompletion_BottleneckAndVolume(t *testing.T) {
	items := []PrepProfile{
		{PrepTimeMinutes: intPtr(10), Quantity: 1},
		{PrepTimeMinutes: intPtr(20), Quantity: 3},
	}

	est := EstimateCompletion(items, CreationEstimateParams)

	// totalWork = 10 + 60 = 70, extra = 50, volumeDelay = ceil(50 * 0.25) = 13
	assert.Equal(t, 20, est.Bottleneck)
	assert.Equal(t, 13, est.VolumeDelay)
	assert.Equal(t, 5, est.OpsBuffer)
	assert.Equal(t, 38, est.DurationMinutes)
}

func TestEstimateCompletion_DefaultPrepTime(t *testing.T) {
	items := []PrepProfile{
		{PrepTimeMinutes: nil, Quantity: 1},
	}

	est := EstimateCompletion(items, CreationEstimateParams)

	assert.Equal(t, 10, est.Bottleneck)
	assert.Equal(t, 15, est.DurationMinutes)
}

func TestEstimateCompletion_ZeroQuantityCountsAsOne(t *testing.T) {
	items := []PrepProfile{
		{PrepTimeMinutes: intPtr(12), Quantity: 0},
	}

	est := EstimateCompletion(items, CreationEstimateParams)

	assert.Equal(t, 12, est.Bottleneck)
	assert.Equal(t, 0, est.VolumeDelay)
	assert.Equal(t, 17, est.DurationMinutes)
}

func TestEstimateCompletion_StatusUpdateFloor(t *testing.T) {
	// Быстрая позиция не опускает срок ниже нижней границы в 15 минут
	items := []PrepProfile{
		{PrepTimeMinutes: intPtr(5), Quantity: 1},
	}

	est := EstimateCompletion(items, StatusUpdateEstimateParams)

	assert.Equal(t, 15, est.Bottleneck)
	assert.Equal(t, 0, est.OpsBuffer)
	assert.Equal(t, 15, est.DurationMinutes)
}

func TestEstimateCompletion_StatusUpdateReadyToPick(t *testing.T) {
	items := []PrepProfile{
		{IsReadyToPick: true, Quantity: 2},
	}

	est := EstimateCompletion(items, StatusUpdateEstimateParams)

	// Пол 15 минут перекрывает вклад готовых позиций
	assert.Equal(t, 15, est.Bottleneck)
	assert.Equal(t, 15, est.DurationMinutes)
}

func TestEstimate_TargetTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	est := Estimate{DurationMinutes: 25}

	assert.Equal(t, now.Add(25*time.Minute), est.TargetTime(now))
}

func TestEstimate_Display(t *testing.T) {
	est := Estimate{DurationMinutes: 18}

	assert.Equal(t, "18-23 mins", est.DisplayRange())
	assert.Equal(t, "~18 mins", est.DisplayApprox())
}
