package validator

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"mealmatch/internal/domain"
)

// Register adds the availability enum tags to validate.
func Register(validate *validator.Validate) error {
	rules := map[string]validator.Func{
		"weekday": func(fl validator.FieldLevel) bool {
			return domain.Weekday(fl.Field().String()).IsValid()
		},
		"timeslot": func(fl validator.FieldLevel) bool {
			return domain.TimeSlot(fl.Field().String()).IsValid()
		},
		"meal_timeslot": func(fl validator.FieldLevel) bool {
			return domain.MealTimeSlot(fl.Field().String()).IsValid()
		},
		"availability_status": func(fl validator.FieldLevel) bool {
			return domain.AvailabilityStatus(fl.Field().String()).IsValid()
		},
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// RegisterGin registers the tags on gin's binding validator.
func RegisterGin() error {
	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	return Register(validate)
}
