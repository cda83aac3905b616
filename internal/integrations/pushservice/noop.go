package pushservice

import "context"

// NoopClient заглушка для работы без push-шлюза
type NoopClient struct{}

func (NoopClient) SendPush(ctx context.Context, token, title, body string, data map[string]any) error {
	return nil
}
