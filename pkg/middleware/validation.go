package middleware

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/wms-platform/outbound-config-service/pkg/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// InitValidator initializes the validator with custom validators
func InitValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		registerCustomValidators(validate)

		// Use JSON tag names for error messages
		validate.RegisterTagNameFunc(jsonTagName)

		// Set as Gin's default validator
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustomValidators(v)
			v.RegisterTagNameFunc(jsonTagName)
		}
	})

	return validate
}

func registerCustomValidators(v *validator.Validate) {
	_ = v.RegisterValidation("task_token", validateTaskToken)
	_ = v.RegisterValidation("allocation_mode", validateAllocationMode)
	_ = v.RegisterValidation("hu_kind", validateHUKind)
	_ = v.RegisterValidation("search_scope", validateSearchScope)
	_ = v.RegisterValidation("batch_preference", validateBatchPreference)
	_ = v.RegisterValidation("safe_string", validateSafeString)
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return fld.Name
	}
	return name
}

// GetValidator returns the singleton validator instance
func GetValidator() *validator.Validate {
	if validate == nil {
		return InitValidator()
	}
	return validate
}

// Custom validators

var safeStringRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.,!?@#$%&*()+=:;'"<>\/\[\]{}|\\~\x60]+$`)

func validateTaskToken(fl validator.FieldLevel) bool {
	validTokens := map[string]bool{
		"OUTBOUND_REPLEN":      true,
		"OUTBOUND_PICK":        true,
		"OUTBOUND_CONSOLIDATE": true,
		"OUTBOUND_PACK":        true,
		"OUTBOUND_LOAD":        true,
	}
	return validTokens[fl.Field().String()]
}

func validateAllocationMode(fl validator.FieldLevel) bool {
	mode := fl.Field().String()
	return mode == "PICK" || mode == "PUT"
}

func validateHUKind(fl validator.FieldLevel) bool {
	validKinds := map[string]bool{
		"PALLET": true,
		"CARTON": true,
		"TOTE":   true,
		"BAG":    true,
	}
	return validKinds[fl.Field().String()]
}

func validateSearchScope(fl validator.FieldLevel) bool {
	validScopes := map[string]bool{
		"BIN":       true,
		"ZONE":      true,
		"WAREHOUSE": true,
	}
	return validScopes[fl.Field().String()]
}

func validateBatchPreference(fl validator.FieldLevel) bool {
	validModes := map[string]bool{
		"FIFO": true,
		"FEFO": true,
		"LIFO": true,
		"NONE": true,
	}
	return validModes[fl.Field().String()]
}

func validateSafeString(fl validator.FieldLevel) bool {
	return safeStringRegex.MatchString(fl.Field().String())
}

// ValidationErrorFormatter formats validation errors into a map
func ValidationErrorFormatter(err error) map[string]string {
	fields := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			fields[field] = formatValidationError(e)
		}
	}

	return fields
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "task_token":
		return "must be a valid task sequence token (OUTBOUND_REPLEN, OUTBOUND_PICK, OUTBOUND_CONSOLIDATE, OUTBOUND_PACK, OUTBOUND_LOAD)"
	case "allocation_mode":
		return "must be PICK or PUT"
	case "hu_kind":
		return "must be a valid HU kind (PALLET, CARTON, TOTE, BAG)"
	case "search_scope":
		return "must be one of: BIN, ZONE, WAREHOUSE"
	case "batch_preference":
		return "must be one of: FIFO, FEFO, LIFO, NONE"
	case "safe_string":
		return "contains invalid characters"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// BindAndValidate binds request body and validates it
func BindAndValidate(c *gin.Context, obj interface{}) *errors.AppError {
	if err := c.ShouldBindJSON(obj); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			fields := ValidationErrorFormatter(validationErrors)
			return errors.ErrValidationWithFields("validation failed", fields)
		}
		return errors.ErrBadRequest("invalid request body: " + err.Error())
	}
	return nil
}

// ValidateStruct validates a struct using the validator
func ValidateStruct(obj interface{}) *errors.AppError {
	v := GetValidator()
	if err := v.Struct(obj); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			fields := ValidationErrorFormatter(validationErrors)
			return errors.ErrValidationWithFields("validation failed", fields)
		}
		return errors.ErrBadRequest("validation failed: " + err.Error())
	}
	return nil
}

// SanitizeString removes potentially dangerous characters from a string
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.TrimSpace(s)
	return s
}
