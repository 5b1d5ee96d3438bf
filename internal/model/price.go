package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/unionprice/union-price-api/pkg/validator"
)

var ErrInvalidBody = errors.New("invalid request body")

// fieldOrder is the order in which constraint violations are reported.
var fieldOrder = []string{"location", "houseType", "bedrooms", "bathrooms", "toilets"}

// PriceRequest is a validated set of house attributes.
type PriceRequest struct {
	Location  string `json:"location"`
	HouseType string `json:"houseType"`
	Bedrooms  int    `json:"bedrooms"`
	Bathrooms int    `json:"bathrooms"`
	Toilets   int    `json:"toilets"`
}

// Count keeps the raw JSON text of a room count so that numeric strings
// and non-integers reach the validator instead of failing decoding.
type Count string

func (c *Count) UnmarshalJSON(b []byte) error {
	s := string(b)
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	*c = Count(s)
	return nil
}

type priceRequestBody struct {
	Location  *string `json:"location" validate:"required,min=1"`
	HouseType *string `json:"houseType" validate:"required,min=1"`
	Bedrooms  *Count  `json:"bedrooms" validate:"required,integer,rooms"`
	Bathrooms *Count  `json:"bathrooms" validate:"required,integer,rooms"`
	Toilets   *Count  `json:"toilets" validate:"required,integer,rooms"`
}

// ValidationError reports the first violated constraint in field order.
// Details lists every violation found.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
	Details []ErrorDetails
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ParsePriceRequest decodes a JSON body and validates it against v.
// Keys must match the field names exactly; a key that differs only in case
// does not count as the field being present.
// It returns either a PriceRequest or a *ValidationError.
func ParsePriceRequest(r io.Reader, v *validator.Validator) (PriceRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return PriceRequest{}, &ValidationError{
			Rule:    "body",
			Message: ErrInvalidBody.Error(),
			Err:     fmt.Errorf("%w: %w", ErrInvalidBody, err),
		}
	}

	var body priceRequestBody
	targets := map[string]any{
		"location":  &body.Location,
		"houseType": &body.HouseType,
		"bedrooms":  &body.Bedrooms,
		"bathrooms": &body.Bathrooms,
		"toilets":   &body.Toilets,
	}
	typeErrs := make(map[string]validator.FieldError)
	for name, dst := range targets {
		msg, ok := raw[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(msg, dst); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return PriceRequest{}, &ValidationError{
					Rule:    "body",
					Message: ErrInvalidBody.Error(),
					Err:     fmt.Errorf("%w: %w", ErrInvalidBody, err),
				}
			}
			typeErrs[name] = validator.FieldError{
				Field:   name,
				Rule:    "type",
				Message: fmt.Sprintf("%q must be a %s", name, jsonKind(typeErr)),
			}
		}
	}

	byField := make(map[string]validator.FieldError)
	for _, fe := range v.Validate(body) {
		if _, seen := byField[fe.Field]; !seen {
			byField[fe.Field] = fe
		}
	}
	for name, fe := range typeErrs {
		byField[name] = fe
	}

	var vErr *ValidationError
	for _, name := range fieldOrder {
		fe, ok := byField[name]
		if !ok {
			continue
		}
		if vErr == nil {
			vErr = &ValidationError{Field: fe.Field, Rule: fe.Rule, Message: fe.Message}
		}
		vErr.Details = append(vErr.Details, ErrorDetails{Field: fe.Field, Issue: fe.Message})
	}
	if vErr != nil {
		return PriceRequest{}, vErr
	}

	return PriceRequest{
		Location:  *body.Location,
		HouseType: *body.HouseType,
		Bedrooms:  body.Bedrooms.Int(),
		Bathrooms: body.Bathrooms.Int(),
		Toilets:   body.Toilets.Int(),
	}, nil
}

// Int is only meaningful once the integer rule has passed.
func (c Count) Int() int {
	n, _ := validator.WholeNumber(string(c))
	return int(n)
}

func jsonKind(e *json.UnmarshalTypeError) string {
	if e.Type == nil {
		return "value"
	}
	k := e.Type.Kind().String()
	if strings.HasPrefix(k, "int") || strings.HasPrefix(k, "float") {
		return "number"
	}
	return k
}

// RentEstimate is the local rent envelope: {"estimated-rent": n}.
type RentEstimate struct {
	EstimatedRent json.Number `json:"estimated-rent"`
}

// SaleEstimate is one element of the local price envelope: [{"estimated-price": n}].
type SaleEstimate struct {
	EstimatedPrice json.Number `json:"estimated-price"`
}

func NewRentEnvelope(d decimal.Decimal) RentEstimate {
	return RentEstimate{EstimatedRent: json.Number(d.String())}
}

func NewPriceEnvelope(d decimal.Decimal) []SaleEstimate {
	return []SaleEstimate{{EstimatedPrice: json.Number(d.String())}}
}
