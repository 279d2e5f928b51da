package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNilPayload is returned when an event carries no payload to decode
var ErrNilPayload = errors.New(ErrMsgNilPayload)

// DecodePayload returns the payload as T. MemoryBus hands over the struct
// itself (or a pointer to it); raw JSON and maps from the SSE stream or a
// replay are re-decoded.
func DecodePayload[T any](input any) (T, error) {
	var result T
	switch v := input.(type) {
	case nil:
		return result, fmt.Errorf("%T: %w", result, ErrNilPayload)
	case T:
		return v, nil
	case *T:
		if v == nil {
			return result, fmt.Errorf("%T: %w", result, ErrNilPayload)
		}
		return *v, nil
	case json.RawMessage:
		return result, unmarshalPayload(v, &result)
	case []byte:
		return result, unmarshalPayload(v, &result)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("%s %T: %w", ErrMsgDecodePayload, result, err)
	}
	return result, unmarshalPayload(data, &result)
}

func unmarshalPayload[T any](data []byte, out *T) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %T: %w", ErrMsgDecodePayload, *out, err)
	}
	return nil
}
