package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	orderRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/order"
	"github.com/krtkm27/ZEats-OrderService/internal/service/orders/models"
)

// Service сервис чтения и отмены заказов
// Создание и смена статуса живут в usecase-слое: там транзакции и побочные
// эффекты (слоты, баллы, уведомления)
type Service struct {
	orderRepo    OrderRepository
	outletRepo   OutletRepository
	slotCounter  SlotCounter
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(
	orderRepo OrderRepository,
	outletRepo OutletRepository,
	slotCounter SlotCounter,
	logger Logger,
) *Service {
	return &Service{
		orderRepo:    orderRepo,
		outletRepo:   outletRepo,
		slotCounter:  slotCounter,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByOrderNumber получает заказ по номеру
// Доступен владельцу, админу и сотрудникам заведения
func (s *Service) GetByOrderNumber(ctx context.Context, orderNumber string, actor domain.Actor) (*models.OrderResponse, error) {
	s.logger.Info("GetByOrderNumber: fetching order %s for user=%d", orderNumber, actor.UserID)

	order, err := s.orderRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("GetByOrderNumber: order %s not found", orderNumber)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetByOrderNumber: repository error for order %s: %v", orderNumber, err)
		return nil, fmt.Errorf("%w: GetByOrderNumber - repository error: %v", ErrInternal, err)
	}

	if order.UserID != actor.UserID && !actor.CanManageOutlet(order.OutletID) {
		s.logger.Warn("GetByOrderNumber: access denied for user=%d to order %s", actor.UserID, orderNumber)
		return nil, ErrAccessDenied
	}

	return models.FromDomainOrder(order), nil
}

// GetUserOrders получает историю заказов пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserOrders(ctx context.Context, req *models.GetUserOrdersRequest) (*models.OrderListResponse, error) {
	s.logger.Info("GetUserOrders: fetching orders for user=%d, status=%v", req.UserID, req.Status)

	var status *domain.OrderStatus
	if req.Status != nil {
		parsed, err := models.ToDomainOrderStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserOrders: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &parsed
	}

	orders, err := s.orderRepo.GetByUserID(ctx, req.UserID, status, req.Limit, req.Offset)
	if err != nil {
		s.logger.Error("GetUserOrders: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserOrders: successfully fetched %d orders for user=%d", len(orders), req.UserID)
	return models.FromDomainOrderList(orders), nil
}

// GetOutletOrders получает заказы заведения (лента кухни)
// Доступно админам и сотрудникам этого заведения
func (s *Service) GetOutletOrders(ctx context.Context, req *models.GetOutletOrdersRequest, actor domain.Actor) (*models.OrderListResponse, error) {
	s.logger.Info("GetOutletOrders: fetching orders for outlet=%d, user=%d", req.OutletID, actor.UserID)

	if !actor.CanManageOutlet(req.OutletID) {
		s.logger.Warn("GetOutletOrders: access denied for user=%d to outlet=%d", actor.UserID, req.OutletID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetOutletOrders: invalid filter for outlet=%d: %v", req.OutletID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	orders, err := s.orderRepo.GetByOutletWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetOutletOrders: repository error for outlet=%d: %v", req.OutletID, err)
		return nil, fmt.Errorf("%w: GetOutletOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOutletOrders: successfully fetched %d orders for outlet=%d", len(orders), req.OutletID)
	return models.FromDomainOrderList(orders), nil
}

// Cancel отменяет заказ от имени покупателя
// Отменять можно только свои заказы и только до готовности
func (s *Service) Cancel(ctx context.Context, req *models.CancelOrderRequest) (*models.OrderResponse, error) {
	s.logger.Info("Cancel: cancelling order %s for user=%d", req.OrderNumber, req.UserID)

	order, err := s.orderRepo.GetByOrderNumber(ctx, req.OrderNumber)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("Cancel: order %s not found", req.OrderNumber)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("Cancel: repository error for order %s: %v", req.OrderNumber, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if order.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to order %s", req.UserID, req.OrderNumber)
		return nil, ErrAccessDenied
	}

	if !order.CanBeCancelled() {
		s.logger.Warn("Cancel: order %s in status %s cannot be cancelled", req.OrderNumber, order.Status)
		return nil, fmt.Errorf("%w: status %s", ErrCannotCancel, order.Status)
	}

	now := s.timeProvider.Now()

	if err := s.orderRepo.Cancel(ctx, req.OrderNumber, now); err != nil {
		s.logger.Error("Cancel: failed to cancel order %s: %v", req.OrderNumber, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Возвращаем бронь слота - best effort, отмена важнее
	s.releaseSlot(ctx, order)

	order.Status = domain.StatusCancelled
	order.CompletedAt = &now

	s.logger.Info("Cancel: successfully cancelled order %s", req.OrderNumber)
	return models.FromDomainOrder(order), nil
}

// releaseSlot возвращает бронь слота отмененного заказа
func (s *Service) releaseSlot(ctx context.Context, order *domain.Order) {
	if order.PickupSlot == nil {
		return
	}

	outlet, err := s.outletRepo.GetByID(ctx, order.OutletID)
	if err != nil {
		s.logger.Warn("Cancel: failed to get outlet %d for slot release: %v", order.OutletID, err)
		return
	}

	serviceDate := order.CreatedAt.In(outlet.Location())
	if err := s.slotCounter.Release(ctx, order.OutletID, serviceDate, *order.PickupSlot); err != nil {
		s.logger.Warn("Cancel: failed to release slot %s for order %s: %v", *order.PickupSlot, order.OrderNumber, err)
	}
}
