package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/Gunvolt24/rapid_express/internal/domain"
)

// MsgInvalidJSON: тело не разбирается как запрос на создание заказа.
const MsgInvalidJSON = "Invalid JSON payload"

// DecodeCreateOrder: строгий разбор запроса на создание заказа:
// неизвестные поля и данные после объекта запрещены.
func DecodeCreateOrder(raw []byte) (*domain.CreateOrderInput, error) {
	var in domain.CreateOrderInput
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return nil, &domain.Error{Kind: domain.ErrInvalidInput, Message: MsgInvalidJSON, Cause: err}
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, &domain.Error{Kind: domain.ErrInvalidInput, Message: MsgInvalidJSON, Cause: errors.New("trailing data")}
	}
	return &in, nil
}

// ValidateOrderFromJSON: разбор и проверка запроса на создание заказа.
func ValidateOrderFromJSON(ctx context.Context, validator *OrderValidator, raw []byte) (*domain.CreateOrderInput, error) {
	in, err := DecodeCreateOrder(raw)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateCreate(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}
