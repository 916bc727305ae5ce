package wire

import (
	"github.com/ugorji/go/codec"
)

// jsonHandle is the shared codec handle for all wire encoding. Canonical
// makes map keys deterministic, and Raw allows envelope bodies to be carried
// as pre-encoded bytes between the transport and the handlers.
var jsonHandle = initHandle()

func initHandle() *codec.JsonHandle {
	h := new(codec.JsonHandle)
	h.Canonical = true
	h.Raw = true
	return h
}

// Marshal encodes v as JSON using the shared handle.
func Marshal(v interface{}) ([]byte, error) {
	var buf []byte
	enc := codec.NewEncoderBytes(&buf, jsonHandle)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf, nil
}

// Unmarshal decodes JSON data into v using the shared handle.
func Unmarshal(data []byte, v interface{}) error {
	dec := codec.NewDecoderBytes(data, jsonHandle)
	return dec.Decode(v)
}
