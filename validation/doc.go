// Package validation provides input validation for seqkit configuration and
// pipeline definitions.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as
// *errors.AppError with a "fields" detail listing each offending field.
//
// # Struct Tag Validation
//
//	type Step struct {
//	    Op string `json:"op" validate:"required,oneof=map filter take drop take_while"`
//	}
//	err := validation.Validate(step)
//
// # Programmatic Validation
//
//	v := validation.New().WithCode(errors.ErrCodeInvalidDefinition)
//	v.Min("steps[0].n", n, 0)
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
