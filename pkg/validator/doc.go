// Package validator provides small composable validation rules.
//
// Each rule function returns a Rule that pairs a Check with translation-ready
// error metadata. Apply evaluates the rules and aggregates the failures into
// ValidationErrors, which implements error:
//
//	err := validator.Apply(
//	    validator.RequiredString("user_name", f.Name),
//	    validator.ValidEmail("user_email", f.Email),
//	    validator.MaxLenString("user_phone", f.Phone, 40),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // render verrs.First("user_email") next to the input
//	}
//
// The package keeps no state and is safe for concurrent use.
package validator
