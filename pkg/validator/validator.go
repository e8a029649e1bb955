package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// RegisterCustom installs the booking-specific validations on gin's
// binding engine. Call once at startup.
func RegisterCustom() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("bookingdate", validDate); err != nil {
		return err
	}
	if err := v.RegisterValidation("bookingtime", validTime); err != nil {
		return err
	}
	return nil
}

func validDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(dateLayout, fl.Field().String())
	return err == nil
}

func validTime(fl validator.FieldLevel) bool {
	_, err := time.Parse(timeLayout, fl.Field().String())
	return err == nil
}
