package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and maps failures to a 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return NewApiError(fiber.StatusBadRequest,
				fmt.Sprintf("Field '%s' failed on the '%s' rule", first.Field(), first.Tag()))
		}
		return NewApiError(fiber.StatusBadRequest, "Invalid request")
	}
	return nil
}
