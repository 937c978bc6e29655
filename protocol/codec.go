package protocol

import (
	"encoding/json"
	"fmt"
)

func Encode(event string, payload any) ([]byte, error) {
	if event == "" {
		return nil, fmt.Errorf("trying to encode envelope with empty event")
	}
	var pb json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		pb = b
	}

	return json.Marshal(Envelope{Event: event, Payload: pb})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("trying to decode envelope with byte size 0")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	if e.Event == "" {
		return Envelope{}, fmt.Errorf("envelope has no event")
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.Payload) == 0 {
		return out, fmt.Errorf("empty payload for event %q", env.Event)
	}
	err := json.Unmarshal(env.Payload, &out)
	return out, err
}
