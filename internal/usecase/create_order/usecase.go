package create_order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/internal/infra/slotcounter"
	"github.com/krtkm27/ZEats-OrderService/internal/infra/storage/notification"
	outletRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/outlet"
	userRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/user"
)

// UseCase use case для создания заказа
type UseCase struct {
	orderRepo        OrderRepository
	outletRepo       OutletRepository
	menuItemRepo     MenuItemRepository
	userRepo         UserRepository
	cartRepo         CartRepository
	notificationRepo NotificationRepository
	slotCounter      SlotCounter
	pushSender       PushSender
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	outletRepo OutletRepository,
	menuItemRepo MenuItemRepository,
	userRepo UserRepository,
	cartRepo CartRepository,
	notificationRepo NotificationRepository,
	slotCounter SlotCounter,
	pushSender PushSender,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:        orderRepo,
		outletRepo:       outletRepo,
		menuItemRepo:     menuItemRepo,
		userRepo:         userRepo,
		cartRepo:         cartRepo,
		notificationRepo: notificationRepo,
		slotCounter:      slotCounter,
		pushSender:       pushSender,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания заказа
// Все операции с БД идут в одной сериализуемой транзакции; бронь слота
// в redis компенсируется при откате транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateOrder: user=%d, outlet=%d, items=%d", req.UserID, req.OutletID, len(req.Items))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOrder: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var (
		result       *domain.Order
		pointsEarned int64
		pushTitle    string
		pushMessage  string
		pushToken    *string

		// Бронь слота в redis живет вне транзакции БД,
		// поэтому при откате ее нужно снять вручную
		reserved       bool
		reservedOutlet *domain.Outlet
		reservedDate   time.Time
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3. Получаем и проверяем позиции меню
		ids := make([]int64, 0, len(req.Items))
		for _, item := range req.Items {
			ids = append(ids, item.MenuItemID)
		}

		menuItems, err := uc.menuItemRepo.GetByIDs(txCtx, ids)
		if err != nil {
			uc.logger.Error("CreateOrder: failed to get menu items: %v", err)
			return fmt.Errorf("%w: failed to get menu items: %v", ErrInternal, err)
		}

		subtotal := 0.0
		targetOutletID := req.OutletID
		orderItems := make([]domain.OrderItem, 0, len(req.Items))

		for _, item := range req.Items {
			menuItem, ok := menuItems[item.MenuItemID]
			if !ok || !menuItem.IsAvailable {
				uc.logger.Warn("CreateOrder: menu item id=%d not found or unavailable", item.MenuItemID)
				return fmt.Errorf("%w: id=%d", ErrMenuItemNotAvailable, item.MenuItemID)
			}

			// Заведение определяется по первой позиции, если не задано явно
			if targetOutletID == 0 {
				targetOutletID = menuItem.OutletID
			}

			subtotal += menuItem.Price * float64(item.Quantity)

			orderItems = append(orderItems, domain.OrderItem{
				MenuItemID:      menuItem.ID,
				Name:            menuItem.Name,
				Price:           menuItem.Price,
				Quantity:        item.Quantity,
				PrepTimeMinutes: menuItem.PrepTimeMinutes,
				IsReadyToPick:   menuItem.IsReadyToPick,
			})
		}

		if targetOutletID == 0 {
			return ErrOutletUnknown
		}

		// 4. Получаем заведение (auto-confirm и вместимость слотов)
		outlet, err := uc.outletRepo.GetByID(txCtx, targetOutletID)
		if err != nil {
			if errors.Is(err, outletRepo.ErrOutletNotFound) {
				uc.logger.Warn("CreateOrder: outlet id=%d not found", targetOutletID)
				return ErrOutletNotFound
			}
			uc.logger.Error("CreateOrder: failed to get outlet id=%d: %v", targetOutletID, err)
			return fmt.Errorf("%w: failed to get outlet: %v", ErrInternal, err)
		}

		// 5. Оценка срока готовности по модели "bottleneck + volume"
		profiles := make([]domain.PrepProfile, len(orderItems))
		for i, item := range orderItems {
			profiles[i] = domain.PrepProfile{
				PrepTimeMinutes: item.PrepTimeMinutes,
				IsReadyToPick:   item.IsReadyToPick,
				Quantity:        item.Quantity,
			}
		}

		estimate := domain.EstimateCompletion(profiles, domain.CreationEstimateParams)
		estimatedTime := estimate.DisplayRange()
		targetTime := estimate.TargetTime(now)

		// Auto-confirm включен: заказ сразу уходит на кухню и таймер стартует.
		// Выключен: заказ ждет ручного подтверждения, pickupTime пока пуст
		initialStatus := domain.StatusPending
		var initialPickupTime *time.Time
		if outlet.AutoConfirm {
			initialStatus = domain.StatusPreparing
			initialPickupTime = &targetTime
		}

		// 6. Скидка за баллы лояльности и налог
		usr, err := uc.userRepo.GetByID(txCtx, req.UserID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				uc.logger.Warn("CreateOrder: user id=%d not found", req.UserID)
				return ErrUserNotFound
			}
			uc.logger.Error("CreateOrder: failed to get user id=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
		}

		discount := 0.0
		if req.UseLoyaltyPoints {
			discount = math.Min(subtotal*domain.LoyaltyDiscountCap, float64(usr.Coins)*domain.LoyaltyCoinValue)
		}

		taxes := (subtotal - discount) * domain.TaxRate
		total := subtotal - discount + taxes

		// 7. Атомарная бронь слота, если покупатель выбрал конкретное время.
		// Транзакция может перезапускаться при конфликте сериализации, а бронь
		// живет вне БД: повторный прогон замыкания переиспользует уже взятое
		// место вместо нового INCR, иначе заказ удержит несколько мест до TTL
		if req.PickupSlot != nil && !reserved {
			serviceDate := now.In(outlet.Location())

			err := uc.slotCounter.Reserve(ctx, outlet.ID, serviceDate, *req.PickupSlot, outlet.MaxPerSlot())
			switch {
			case errors.Is(err, slotcounter.ErrSlotFull):
				uc.logger.Warn("CreateOrder: slot %s is full for outlet id=%d", *req.PickupSlot, outlet.ID)
				return ErrSlotNotAvailable
			case errors.Is(err, slotcounter.ErrUnavailable):
				// Redis недоступен: лимиты слотов мягкие, заказ важнее
				uc.logger.Warn("CreateOrder: slot counter unavailable, admitting without reservation: %v", err)
			case err != nil:
				uc.logger.Error("CreateOrder: failed to reserve slot: %v", err)
				return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
			default:
				reserved = true
				reservedOutlet = outlet
				reservedDate = serviceDate
			}
		}

		paymentMethod := req.PaymentMethod
		if paymentMethod == "" {
			paymentMethod = domain.DefaultPaymentMethod
		}

		// 8. Создаем заказ
		order := &domain.Order{
			OrderNumber:   generateOrderNumber(now),
			UserID:        req.UserID,
			OutletID:      outlet.ID,
			Status:        initialStatus,
			Subtotal:      subtotal,
			Discount:      discount,
			Tax:           taxes,
			Total:         total,
			PaymentMethod: paymentMethod,
			PickupSlot:    req.PickupSlot,
			PickupTime:    initialPickupTime,
			EstimatedTime: &estimatedTime,
			Instructions:  req.SpecialInstructions,
			QRCode:        uuid.NewString(),
			Items:         orderItems,
		}

		created, err := uc.orderRepo.Create(txCtx, order)
		if err != nil {
			uc.logger.Error("CreateOrder: failed to create order: %v", err)
			return fmt.Errorf("%w: failed to create order: %v", ErrInternal, err)
		}

		// 9. Баллы лояльности: списание за скидку и начисление за заказ
		if req.UseLoyaltyPoints && discount > 0 {
			pointsUsed := int64(math.Floor(discount * 100))
			if err := uc.userRepo.AdjustCoins(txCtx, req.UserID, -pointsUsed); err != nil {
				uc.logger.Error("CreateOrder: failed to deduct loyalty points: %v", err)
				return fmt.Errorf("%w: failed to deduct loyalty points: %v", ErrInternal, err)
			}
		}

		pointsEarned = int64(math.Floor(total)) * domain.LoyaltyPointsPerRupee
		if err := uc.userRepo.AdjustCoins(txCtx, req.UserID, pointsEarned); err != nil {
			uc.logger.Error("CreateOrder: failed to add loyalty points: %v", err)
			return fmt.Errorf("%w: failed to add loyalty points: %v", ErrInternal, err)
		}

		// 10. Очищаем корзину
		if err := uc.cartRepo.ClearByUserID(txCtx, req.UserID); err != nil {
			uc.logger.Error("CreateOrder: failed to clear cart: %v", err)
			return fmt.Errorf("%w: failed to clear cart: %v", ErrInternal, err)
		}

		// 11. Уведомление в ленту - best effort, заказ важнее
		pushTitle = "Order Placed Successfully!"
		pushMessage = fmt.Sprintf("Your order #%s at %s has been placed.", created.OrderNumber, outlet.Name)
		pushToken = usr.PushToken

		n := &notification.Notification{
			UserID:   req.UserID,
			Type:     "order",
			Title:    pushTitle,
			Message:  pushMessage,
			TargetID: created.OrderNumber,
		}
		if err := uc.notificationRepo.Create(txCtx, n); err != nil {
			uc.logger.Error("CreateOrder: failed to create notification: %v", err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Компенсация: транзакция откатилась, возвращаем бронь слота
		if reserved {
			if relErr := uc.slotCounter.Release(ctx, reservedOutlet.ID, reservedDate, *req.PickupSlot); relErr != nil {
				uc.logger.Error("CreateOrder: failed to release slot reservation: %v", relErr)
			}
		}
		return nil, err
	}

	// 12. Push после коммита - best effort
	if pushToken != nil && *pushToken != "" {
		if pushErr := uc.pushSender.SendPush(ctx, *pushToken, pushTitle, pushMessage,
			map[string]any{"type": "order", "targetId": result.OrderNumber}); pushErr != nil {
			uc.logger.Warn("CreateOrder: failed to send push notification: %v", pushErr)
		}
	}

	uc.logger.Info("CreateOrder: successfully created order %s, points earned=%d", result.OrderNumber, pointsEarned)

	return buildResponse(result, pointsEarned), nil
}

// generateOrderNumber генерирует номер заказа вида "ZOR-1741600000000-042"
func generateOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s-%d-%03d", domain.OrderNumberPrefix, now.UnixMilli(), rand.Intn(1000))
}

func buildResponse(order *domain.Order, pointsEarned int64) *Response {
	items := make([]ResponseItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = ResponseItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		}
	}

	return &Response{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID,
		OutletID:      order.OutletID,
		Status:        string(order.Status),
		Subtotal:      order.Subtotal,
		Discount:      order.Discount,
		Tax:           order.Tax,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		PickupSlot:    order.PickupSlot,
		PickupTime:    order.PickupTime,
		EstimatedTime: order.EstimatedTime,
		Instructions:  order.Instructions,
		QRCode:        order.QRCode,
		Items:         items,
		PointsEarned:  pointsEarned,
		CreatedAt:     order.CreatedAt,
	}
}
