package update_order_status

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/internal/infra/storage/notification"
	orderRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/order"
)

// statusTitles заголовки уведомлений по целевому статусу
var statusTitles = map[domain.OrderStatus]string{
	domain.StatusConfirmed:      "Order Confirmed",
	domain.StatusPreparing:      "Preparing Your Food",
	domain.StatusReady:          "Ready for Pickup!",
	domain.StatusOutForDelivery: "Out for Delivery",
	domain.StatusDelivered:      "Order Completed",
	domain.StatusCancelled:      "Order Cancelled",
}

// firstNumber выделяет длительность в минутах из ручной оценки ("25 mins" -> 25)
var firstNumber = regexp.MustCompile(`\d+`)

// UseCase use case для смены статуса заказа оператором
type UseCase struct {
	orderRepo        OrderRepository
	userRepo         UserRepository
	notificationRepo NotificationRepository
	pushSender       PushSender
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	userRepo UserRepository,
	notificationRepo NotificationRepository,
	pushSender PushSender,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		pushSender:       pushSender,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case смены статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateOrderStatus: order=%s, status=%s, actor=%d", req.OrderNumber, req.Status, req.Actor.UserID)

	// 1. Валидация входных данных
	if req.OrderNumber == "" {
		return nil, fmt.Errorf("%w: orderNumber is required", ErrInvalidInput)
	}

	nextStatus, ok := domain.ParseOrderStatus(req.Status)
	if !ok || nextStatus == domain.StatusNew || nextStatus == domain.StatusPending {
		uc.logger.Warn("UpdateOrderStatus: invalid status %q", req.Status)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	now := uc.timeProvider.Now()

	var result *domain.Order

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Получаем заказ с позициями
		order, err := uc.orderRepo.GetByOrderNumber(txCtx, req.OrderNumber)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				uc.logger.Warn("UpdateOrderStatus: order %s not found", req.OrderNumber)
				return ErrOrderNotFound
			}
			uc.logger.Error("UpdateOrderStatus: failed to get order %s: %v", req.OrderNumber, err)
			return fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
		}

		// 3. Проверка прав: админ или сотрудник этого заведения
		if !req.Actor.CanManageOutlet(order.OutletID) {
			uc.logger.Warn("UpdateOrderStatus: actor %d may not manage outlet %d", req.Actor.UserID, order.OutletID)
			return ErrAccessDenied
		}

		// 4. Проверка перехода статусов
		if !order.CanTransition(nextStatus) {
			uc.logger.Warn("UpdateOrderStatus: transition %s -> %s is not allowed", order.Status, nextStatus)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, nextStatus)
		}

		params := orderRepo.UpdateStatusParams{Status: nextStatus}

		// 5. Таймер готовности. Первый вход в confirmed/preparing без
		// проставленного pickupTime пересчитывает оценку по модели кухни;
		// иначе ручная оценка оператора пересчитывает pickupTime напрямую
		stampsPickupTime := (nextStatus == domain.StatusConfirmed || nextStatus == domain.StatusPreparing) &&
			order.PickupTime == nil

		if stampsPickupTime {
			estimate := domain.EstimateCompletion(order.PrepProfiles(), domain.StatusUpdateEstimateParams)
			target := estimate.TargetTime(now)
			display := estimate.DisplayApprox()

			params.PickupTime = &target
			params.EstimatedTime = &display
		} else if req.EstimatedTime != nil && *req.EstimatedTime != "" {
			params.EstimatedTime = req.EstimatedTime

			if match := firstNumber.FindString(*req.EstimatedTime); match != "" {
				minutes, convErr := strconv.Atoi(match)
				if convErr == nil {
					target := now.Add(time.Duration(minutes) * time.Minute)
					params.PickupTime = &target
				}
			}
		}

		if nextStatus == domain.StatusDelivered {
			params.CompletedAt = &now
		}

		// 6. Сохраняем
		if err := uc.orderRepo.UpdateStatus(txCtx, req.OrderNumber, params); err != nil {
			uc.logger.Error("UpdateOrderStatus: failed to update order %s: %v", req.OrderNumber, err)
			return fmt.Errorf("%w: failed to update order: %v", ErrInternal, err)
		}

		// Собираем итоговое состояние для ответа
		order.Status = nextStatus
		if params.PickupTime != nil {
			order.PickupTime = params.PickupTime
		}
		if params.EstimatedTime != nil {
			order.EstimatedTime = params.EstimatedTime
		}
		if params.CompletedAt != nil {
			order.CompletedAt = params.CompletedAt
		}

		// 7. Уведомление в ленту - best effort
		title, ok := statusTitles[nextStatus]
		if !ok {
			title = "Order Update"
		}
		message := fmt.Sprintf("Your order status is now: %s", nextStatus)

		n := &notification.Notification{
			UserID:   order.UserID,
			Type:     "order",
			Title:    title,
			Message:  message,
			TargetID: order.OrderNumber,
		}
		if err := uc.notificationRepo.Create(txCtx, n); err != nil {
			uc.logger.Error("UpdateOrderStatus: failed to create notification: %v", err)
		}

		result = order
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 8. Push после коммита - best effort
	uc.notifyCustomer(ctx, result)

	uc.logger.Info("UpdateOrderStatus: order %s moved to %s", result.OrderNumber, result.Status)

	return &Response{
		OrderNumber:   result.OrderNumber,
		Status:        string(result.Status),
		PickupSlot:    result.PickupSlot,
		PickupTime:    result.PickupTime,
		EstimatedTime: result.EstimatedTime,
		CompletedAt:   result.CompletedAt,
	}, nil
}

// notifyCustomer отправляет push покупателю; любые ошибки только логируются
func (uc *UseCase) notifyCustomer(ctx context.Context, order *domain.Order) {
	usr, err := uc.userRepo.GetByID(ctx, order.UserID)
	if err != nil {
		uc.logger.Warn("UpdateOrderStatus: failed to get user %d for push: %v", order.UserID, err)
		return
	}
	if usr.PushToken == nil || *usr.PushToken == "" {
		return
	}

	title, ok := statusTitles[order.Status]
	if !ok {
		title = "Order Update"
	}
	message := fmt.Sprintf("Your order status is now: %s", order.Status)

	if err := uc.pushSender.SendPush(ctx, *usr.PushToken, title, message,
		map[string]any{"type": "order", "targetId": order.OrderNumber}); err != nil {
		uc.logger.Warn("UpdateOrderStatus: failed to send push: %v", err)
	}
}
