package wire

import (
	"bytes"
	"reflect"
	"testing"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	body := &BroadcastBody{
		BaseBody: BaseBody{Type: KindBroadcast, MsgID: 7},
		Message:  42,
	}

	env, err := NewEnvelope("c1", "n1", body)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	encoded, err := Marshal(env)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	var decoded Envelope
	if err := Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("err: %v", err)
	}

	if decoded.Src != "c1" || decoded.Dest != "n1" {
		t.Fatalf("bad routing: %+v", decoded)
	}

	base, err := decoded.Base()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if base.Type != KindBroadcast || base.MsgID != 7 {
		t.Fatalf("bad base: %+v", base)
	}

	var out BroadcastBody
	if err := decoded.DecodeBody(&out); err != nil {
		t.Fatalf("err: %v", err)
	}
	if out.Message != 42 {
		t.Fatalf("bad message: %d", out.Message)
	}
}

func TestBaseIgnoresKindFields(t *testing.T) {
	// Base must decode routing fields while skipping unknown payload fields.
	raw := []byte(`{"src":"n1","dest":"n2","body":{"type":"gossip","msg_id":3,"values":[1,2,3]}}`)

	var env Envelope
	if err := Unmarshal(raw, &env); err != nil {
		t.Fatalf("err: %v", err)
	}

	base, err := env.Base()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if base.Type != KindGossip || base.MsgID != 3 || base.InReplyTo != 0 {
		t.Fatalf("bad base: %+v", base)
	}

	var gossip GossipBody
	if err := env.DecodeBody(&gossip); err != nil {
		t.Fatalf("err: %v", err)
	}
	if !reflect.DeepEqual(gossip.Values, []int64{1, 2, 3}) {
		t.Fatalf("bad values: %v", gossip.Values)
	}
}

func TestOmittedRoutingFields(t *testing.T) {
	// Replies that expect no reply themselves must not carry a msg_id.
	body := &InitOkBody{BaseBody: BaseBody{Type: KindInitOk, InReplyTo: 1}}

	raw, err := Marshal(body)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if bytes.Contains(raw, []byte("msg_id")) {
		t.Fatalf("msg_id should be omitted: %s", raw)
	}
	if !bytes.Contains(raw, []byte("in_reply_to")) {
		t.Fatalf("in_reply_to missing: %s", raw)
	}
}
