package shared

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	val "github.com/go-playground/validator/v10"

	"hotel_ops/internal/domain"
)

var (
	validate     *val.Validate
	validateOnce sync.Once
)

func validator() *val.Validate {
	validateOnce.Do(func() {
		validate = val.New(val.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct checks the `validate` tags of v. Failures wrap domain.ErrInvalidArgument.
func ValidateStruct(v any) error {
	if err := validator().Struct(v); err != nil {
		return fmt.Errorf("%s: %w", message(err), domain.ErrInvalidArgument)
	}
	return nil
}

func message(err error) string {
	var verrs val.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "gt", "gte", "min":
			parts = append(parts, fmt.Sprintf("%s must be %s %s", fe.Field(), opWord(fe.Tag()), fe.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

func opWord(tag string) string {
	if tag == "gt" {
		return "greater than"
	}
	return "at least"
}
