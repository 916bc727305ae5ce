package wire

// Protocol error codes, matching the Maelstrom error table.
const (
	ErrCodeTimeout      = 0
	ErrCodeNotSupported = 10
	ErrCodeCrash        = 13
)

// ErrorBody is the reply sent when a request cannot be served.
type ErrorBody struct {
	BaseBody
	Code int    `json:"code"`
	Text string `json:"text"`
}

// NewErrorBody builds an error reply with the given code and text.
func NewErrorBody(code int, text string) *ErrorBody {
	return &ErrorBody{
		BaseBody: BaseBody{Type: KindError},
		Code:     code,
		Text:     text,
	}
}
