package generate_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OutletID <= 0 {
		return fmt.Errorf("%w: outletID must be positive", ErrInvalidInput)
	}

	return nil
}
