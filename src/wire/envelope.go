package wire

import (
	"github.com/ugorji/go/codec"
)

// Envelope is one addressed message unit. The body is kept in raw encoded
// form so that the runtime can inspect the routing fields without knowing
// the kind-specific payload, and hand the raw bytes to the right handler.
type Envelope struct {
	Src  string    `json:"src"`
	Dest string    `json:"dest"`
	Body codec.Raw `json:"body"`
}

// NewEnvelope encodes body and wraps it in an envelope from src to dest.
func NewEnvelope(src, dest string, body Body) (Envelope, error) {
	raw, err := Marshal(body)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Src: src, Dest: dest, Body: codec.Raw(raw)}, nil
}

// Base decodes only the routing fields of the body.
func (e *Envelope) Base() (BaseBody, error) {
	var base BaseBody
	err := Unmarshal(e.Body, &base)
	return base, err
}

// DecodeBody decodes the full body into a kind-specific struct.
func (e *Envelope) DecodeBody(v interface{}) error {
	return Unmarshal(e.Body, v)
}

// Body is implemented by all kind-specific body structs, through an embedded
// BaseBody. It lets the runtime stamp routing fields on outbound bodies.
type Body interface {
	Kind() string
	SetMsgID(id uint64)
	SetInReplyTo(id uint64)
}

// BaseBody carries the fields common to every message body.
type BaseBody struct {
	Type      string `json:"type"`
	MsgID     uint64 `json:"msg_id,omitempty"`
	InReplyTo uint64 `json:"in_reply_to,omitempty"`
}

// Kind returns the message-kind tag.
func (b *BaseBody) Kind() string {
	return b.Type
}

// SetMsgID sets the request id.
func (b *BaseBody) SetMsgID(id uint64) {
	b.MsgID = id
}

// SetInReplyTo marks the body as a reply to the given request id.
func (b *BaseBody) SetInReplyTo(id uint64) {
	b.InReplyTo = id
}
