package validator

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	TagInteger = "integer"
	TagRooms   = "rooms"
)

// FieldError is a single failed constraint, rendered for clients.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// Validator wraps go-playground/validator with the room count policy
// and English messages keyed by the json field name.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
	min, max int
}

func New(minRooms, maxRooms int) (*Validator, error) {
	if minRooms > maxRooms {
		return nil, fmt.Errorf("invalid room bounds %d..%d", minRooms, maxRooms)
	}
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		trans:    trans,
		min:      minRooms,
		max:      maxRooms,
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.validate.RegisterValidation(TagInteger, isInteger); err != nil {
		return nil, err
	}
	if err := v.validate.RegisterValidation(TagRooms, v.inRange); err != nil {
		return nil, err
	}
	if err := en_translations.RegisterDefaultTranslations(v.validate, trans); err != nil {
		return nil, err
	}
	if err := v.registerTranslations(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Validator) Bounds() (int, int) {
	return v.min, v.max
}

// Validate checks s and returns every failed constraint in field declaration order.
// A nil result means s is valid.
func (v *Validator) Validate(s any) []FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validErrs validator.ValidationErrors
	if !errors.As(err, &validErrs) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(validErrs))
	for _, vErr := range validErrs {
		out = append(out, FieldError{
			Field:   vErr.Field(),
			Rule:    vErr.Tag(),
			Message: vErr.Translate(v.trans),
		})
	}
	return out
}

func (v *Validator) registerTranslations() error {
	rules := []struct {
		tag  string
		text string
	}{
		{"required", `"{0}" is required`},
		{"min", `"{0}" is not allowed to be empty`},
		{TagInteger, `"{0}" must be an integer`},
	}
	for _, rule := range rules {
		err := v.validate.RegisterTranslation(rule.tag, v.trans, func(t ut.Translator) error {
			return t.Add(rule.tag, rule.text, true)
		}, func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(fe.Tag(), fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		})
		if err != nil {
			return err
		}
	}

	return v.validate.RegisterTranslation(TagRooms, v.trans, func(t ut.Translator) error {
		if err := t.Add("rooms-min", `"{0}" must be greater than or equal to {1}`, true); err != nil {
			return err
		}
		return t.Add("rooms-max", `"{0}" must be less than or equal to {1}`, true)
	}, func(t ut.Translator, fe validator.FieldError) string {
		n, _ := wholeNumber(fe.Value())
		key, bound := "rooms-max", v.max
		if n < int64(v.min) {
			key, bound = "rooms-min", v.min
		}
		msg, err := t.T(key, fe.Field(), strconv.Itoa(bound))
		if err != nil {
			return fe.Error()
		}
		return msg
	})
}

func isInteger(fl validator.FieldLevel) bool {
	_, ok := wholeNumber(fl.Field().Interface())
	return ok
}

func (v *Validator) inRange(fl validator.FieldLevel) bool {
	n, ok := wholeNumber(fl.Field().Interface())
	if !ok {
		return false
	}
	return n >= int64(v.min) && n <= int64(v.max)
}

// wholeNumber accepts ints, whole floats and their string forms (json.Number included).
func wholeNumber(val any) (int64, bool) {
	rv := reflect.ValueOf(val)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return 0, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return math.MaxInt64, true
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		return wholeFloat(rv.Float())
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(s, 64)
		switch {
		case err == nil && math.IsInf(f, 0):
			// spelled out "Inf" is not a number a client can send
			return 0, false
		case err != nil && !(errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0)):
			return 0, false
		}
		return wholeFloat(f)
	}
	return 0, false
}

// wholeFloat saturates whole values outside int64, so they still count as
// integers and fail the range rule instead.
func wholeFloat(f float64) (int64, bool) {
	switch {
	case math.IsNaN(f):
		return 0, false
	case math.IsInf(f, 1) || f >= 0x1p63:
		return math.MaxInt64, true
	case math.IsInf(f, -1) || f < -0x1p63:
		return math.MinInt64, true
	case f != math.Trunc(f):
		return 0, false
	}
	return int64(f), true
}

// WholeNumber exposes the integer coercion used by the integer tag.
func WholeNumber(val any) (int64, bool) {
	return wholeNumber(val)
}
