package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shidoukh/shidoukh/internal/services"
	apperrors "github.com/shidoukh/shidoukh/pkg/errors"
	"github.com/shidoukh/shidoukh/pkg/validator"
)

// bindAndValidate decodes the JSON body and runs struct validation,
// translating failures into the French messages the dashboard displays.
func bindAndValidate(c *gin.Context, dest any) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return services.ErrRequiredFields
	}

	if err := validator.ValidateStruct(dest); err != nil {
		return formatValidationError(err)
	}

	return nil
}

func formatValidationError(err error) error {
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return apperrors.NewBadRequest("Requête invalide")
	}

	switch {
	case failures.HasTag("required"):
		return services.ErrRequiredFields
	case failures.HasTag("email"):
		return services.ErrInvalidEmail
	case failures.HasTag("eqfield"):
		return services.ErrPasswordMismatch
	default:
		return apperrors.NewBadRequest("Requête invalide")
	}
}
