package validators

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register adiciona as tags "hhmm" (15:04) e "isodate" (2006-01-02) ao
// validador usado pelo binding do gin.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("hhmm", layout("15:04")); err != nil {
		return err
	}
	return v.RegisterValidation("isodate", layout("2006-01-02"))
}

func layout(l string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := time.Parse(l, fl.Field().String())
		return err == nil
	}
}
