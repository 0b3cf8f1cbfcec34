package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their json names so messages match the request body.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateRequest runs the struct's validate tags and returns a 400 AppError naming
// the first failing field.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return BadRequest("Invalid request")
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return BadRequest("Missing " + field)
	case "oneof":
		return BadRequest(fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
	case "min", "max", "gte", "lte":
		return BadRequest(fmt.Sprintf("%s is out of range (%s %s)", field, fe.Tag(), fe.Param()))
	default:
		return BadRequest(fmt.Sprintf("%s is invalid", field))
	}
}
