package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrMissingData is returned when a success envelope lacks its data member.
var ErrMissingData = errors.New("missing field `data`")

// Response is the upstream success envelope, {"data": T}.
type Response[T any] struct {
	Data T `json:"data"`
}

// UnmarshalJSON requires a non-null data member before decoding it into T.
func (r *Response[T]) UnmarshalJSON(b []byte) error {
	var raw struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw.Data) == 0 || bytes.Equal(raw.Data, []byte("null")) {
		return ErrMissingData
	}
	return json.Unmarshal(raw.Data, &r.Data)
}

// Validate checks the payload when it knows how to validate itself.
func (r *Response[T]) Validate() error {
	if v, ok := any(r.Data).(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

// ErrorEnvelope is the body of every error the gateway produces itself.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the numeric code and a diagnostic message.
// Metadata is always serialized, as null when empty.
type ErrorBody struct {
	Code     int            `json:"code"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata"`
}

// NewErrorEnvelope builds an ErrorEnvelope without metadata.
func NewErrorEnvelope(code int, message string) ErrorEnvelope {
	return ErrorEnvelope{Error: ErrorBody{Code: code, Message: message}}
}
