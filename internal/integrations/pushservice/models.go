package pushservice

// Message push-сообщение в формате Expo Push API
type Message struct {
	To    string         `json:"to"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Sound string         `json:"sound,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}

// Ticket результат доставки одного сообщения
type Ticket struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Receipt ответ Expo на пачку сообщений
type Receipt struct {
	Data []Ticket `json:"data"`
}
