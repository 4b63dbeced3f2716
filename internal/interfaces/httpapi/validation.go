package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/media"
	"github.com/ffmaxarena/arena-api/internal/domain/organizer"
	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"github.com/ffmaxarena/arena-api/internal/usecase"
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
)

type fieldError struct {
	Field   string
	Message string
}

// validationError is an ErrInvalidInput that knows which fields failed.
type validationError struct {
	fields []fieldError
}

func (e *validationError) Error() string {
	parts := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: validation failed: %s", usecase.ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *validationError) Unwrap() error {
	return usecase.ErrInvalidInput
}

func newValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	fields := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return &validationError{fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "imageurl":
		return "must be an http(s) URL or an image data URI"
	case "notpast":
		return "cannot be in the past"
	case "datetime":
		return "must use YYYY-MM-DD"
	case "badge":
		return "must be one of " + strings.Join(organizer.Badges, ", ")
	case "gamemode":
		return "must be a known game mode"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gte", "lte", "max", "min":
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	default:
		return "is invalid"
	}
}

// newValidator registers the form rules on top of the stock validator.
// Field names in errors come from the json tags.
func newValidator(clock clockwork.Clock, location *time.Location) *validator.Validate {
	if location == nil {
		location = time.Local
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	_ = v.RegisterValidation("imageurl", func(fl validator.FieldLevel) bool {
		return media.IsImageURL(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("badge", func(fl validator.FieldLevel) bool {
		return organizer.IsKnownBadge(fl.Field().String())
	})
	_ = v.RegisterValidation("gamemode", func(fl validator.FieldLevel) bool {
		mode, err := tournament.ParseGameMode(fl.Field().String())
		return err == nil && mode != tournament.GameModeAll
	})
	_ = v.RegisterValidation("notpast", func(fl validator.FieldLevel) bool {
		day, err := time.ParseInLocation(tournament.DateLayout, strings.TrimSpace(fl.Field().String()), location)
		if err != nil {
			return false
		}
		now := clock.Now().In(location)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, location)
		return !day.Before(today)
	})

	return v
}
