package create_order

import (
	"fmt"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrInvalidInput)
	}

	for i, item := range req.Items {
		if item.MenuItemID <= 0 {
			return fmt.Errorf("%w: item %d: menuItemID must be positive", ErrInvalidInput, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d: quantity must be positive", ErrInvalidInput, i)
		}
	}

	if req.PickupSlot != nil {
		if err := req.PickupSlot.Validate(); err != nil {
			return fmt.Errorf("%w: invalid pickup slot: %v", ErrInvalidInput, err)
		}
	}

	if req.SpecialInstructions != nil && len(*req.SpecialInstructions) > domain.MaxInstructionsLength {
		return fmt.Errorf("%w: special instructions exceed %d characters", ErrInvalidInput, domain.MaxInstructionsLength)
	}

	return nil
}
