package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs tag validation on a request DTO and converts the
// first failure into a ValidationError the error handler can map to 400.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidation(fmt.Sprintf("field %s failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return apperrors.NewValidation(err.Error())
}
