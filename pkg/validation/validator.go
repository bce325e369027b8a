package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	datasetNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

func init() {
	validate = validator.New()
	// dataset_name: lower-case identifier usable as a schema registry key
	_ = validate.RegisterValidation("dataset_name", func(fl validator.FieldLevel) bool {
		return datasetNamePattern.MatchString(fl.Field().String())
	})
	// datapath: local path or s3://bucket/key
	_ = validate.RegisterValidation("datapath", func(fl validator.FieldLevel) bool {
		return ValidateDataPath(fl.Field().String()) == nil
	})
}

// Struct validates v using its `validate` struct tags.
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateDataPath checks that p is a plausible local path or S3 URI.
func ValidateDataPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return errors.New("path is empty")
	}
	if rest, ok := strings.CutPrefix(p, "s3://"); ok {
		bucket, key, found := strings.Cut(rest, "/")
		if !found || bucket == "" || key == "" {
			return fmt.Errorf("S3 URI %q must be s3://bucket/key", p)
		}
	}
	return nil
}

// formatValidationError reports every failed field in a user-friendly form.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	errs := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			errs = append(errs, fmt.Errorf("%s: field is required", field))
		case "min", "gte":
			errs = append(errs, fmt.Errorf("%s: must be at least %s", field, param))
		case "max", "lte":
			errs = append(errs, fmt.Errorf("%s: must not exceed %s", field, param))
		case "oneof":
			errs = append(errs, fmt.Errorf("%s: must be one of [%s]", field, param))
		case "dataset_name":
			errs = append(errs, fmt.Errorf("%s: %q is not a valid dataset name", field, e.Value()))
		case "datapath":
			errs = append(errs, fmt.Errorf("%s: %q is not a local path or s3://bucket/key", field, e.Value()))
		default:
			errs = append(errs, fmt.Errorf("%s: validation failed (%s)", field, e.Tag()))
		}
	}
	return errors.Join(errs...)
}
