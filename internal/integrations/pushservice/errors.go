package pushservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("pushservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от Expo
	ErrInvalidResponse = errors.New("pushservice client: invalid response")

	// ErrNoToken возвращается, когда у получателя нет push-токена
	ErrNoToken = errors.New("recipient has no push token")
)
