package realtime

const (
	msgSubscribe   = "subscribe"
	msgUnsubscribe = "unsubscribe"
	msgPing        = "ping"
	msgPong        = "pong"
	msgChange      = "change"
	msgError       = "error"
)

type clientMessage struct {
	Type   string `json:"type"`
	Ref    string `json:"ref,omitempty"`
	Table  string `json:"table,omitempty"`
	Filter string `json:"filter,omitempty"`
}

type serverMessage struct {
	Type    string  `json:"type"`
	Ref     string  `json:"ref,omitempty"`
	Table   string  `json:"table,omitempty"`
	Filter  string  `json:"filter,omitempty"`
	Change  *Change `json:"change,omitempty"`
	Code    string  `json:"code,omitempty"`
	Message string  `json:"message,omitempty"`
}

func errorMessage(code, message string) serverMessage {
	return serverMessage{Type: msgError, Code: code, Message: message}
}
