// Package validation wraps go-playground/validator with English translations,
// json field names in messages, and the custom tags used by request types.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/holywrit/ideas/pkg/datauri"
)

// ErrInvalid wraps every failed validation.
var ErrInvalid = errors.New("validation failed")

// The built-in "datauri" tag accepts any data URI; this one requires the
// base64 form that datauri.Parse decodes.
var (
	dataURITag  = "base64datauri"
	dataURIText = "{0} must be a valid base64 data URI"

	requiredTag  = "required"
	requiredText = "{0} is required"
)

// Validator validates structs and renders failures as translated messages.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New creates a Validator with English translations and the custom tags
// registered. Registration only fails on a programming error, so New panics.
func New() *Validator {
	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(fmt.Errorf("register default translations: %w", err))
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := errors.Join(
		validate.RegisterValidation(dataURITag, dataURIValidation),
		RegisterCustomTranslation(validate, translator, dataURITag, dataURIText),
		RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true),
	)
	if err != nil {
		panic(fmt.Errorf("register custom validations: %w", err))
	}

	return &Validator{
		validate:   validate,
		translator: translator,
	}
}

// Struct validates v. On failure it returns ErrInvalid wrapping a
// semicolon-joined list of translated field messages.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Join(ErrInvalid, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Translate(v.translator))
	}

	return &Error{Messages: msgs}
}

// Error carries the translated messages of a failed validation.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

// RegisterCustomTranslation registers a translation for tag. Pass override
// to replace one of the default translations; without it, a tag that
// already has a translation is an error.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) error {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	return validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// dataURIValidation accepts empty strings so that it composes with required.
func dataURIValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := datauri.Parse(s)
	return err == nil
}
