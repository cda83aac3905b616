package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	outletRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/outlet"
)

// UseCase use case для получения слотов самовывоза с занятостью
type UseCase struct {
	outletRepo   OutletRepository
	orderRepo    OrderRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	outletRepo OutletRepository,
	orderRepo OrderRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		outletRepo:   outletRepo,
		orderRepo:    orderRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: outlet=%d, includePast=%v", req.OutletID, req.IncludePast)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем заведение
	outlet, err := uc.outletRepo.GetByID(ctx, req.OutletID)
	if err != nil {
		if errors.Is(err, outletRepo.ErrOutletNotFound) {
			uc.logger.Warn("GenerateSlots: outlet id=%d not found", req.OutletID)
			return nil, ErrOutletNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get outlet id=%d: %v", req.OutletID, err)
		return nil, fmt.Errorf("%w: failed to get outlet: %v", ErrInternal, err)
	}

	// 3. Вручную закрытое заведение не предлагает слоты покупателям.
	// Оператор при этом видит полный список по расписанию, поэтому проверка
	// идет до всех расчетов только для клиентского запроса
	if !outlet.IsManuallyOpen && !req.IncludePast {
		uc.logger.Info("GenerateSlots: outlet id=%d is manually closed, returning empty list", req.OutletID)
		return &Response{OutletID: req.OutletID, Slots: []Slot{}}, nil
	}

	// 4. Текущее время в часовом поясе заведения
	loc := outlet.Location()
	now := uc.timeProvider.Now().In(loc)

	// 5. Генерируем сетку слотов на сегодня
	times := generateDaySlots(outlet, now, req.IncludePast)
	if len(times) == 0 {
		uc.logger.Info("GenerateSlots: no slots in window for outlet id=%d", req.OutletID)
		return &Response{OutletID: req.OutletID, Slots: []Slot{}}, nil
	}

	// 6. Занятость: активные заказы, созданные с начала сегодняшнего дня
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	orders, err := uc.orderRepo.GetActiveByOutletSince(ctx, req.OutletID, startOfToday)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to get active orders for outlet id=%d: %v", req.OutletID, err)
		return nil, fmt.Errorf("%w: failed to get active orders: %v", ErrInternal, err)
	}

	counts := countSlotOccupancy(orders)
	slots := annotateSlots(times, counts, outlet.MaxPerSlot())

	uc.logger.Info("GenerateSlots: generated %d slots for outlet id=%d", len(slots), req.OutletID)

	return &Response{
		OutletID: req.OutletID,
		Slots:    slots,
	}, nil
}
