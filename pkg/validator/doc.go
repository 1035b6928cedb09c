// Package validator provides the field predicates shared by the marketing widgets
// together with a small rule-building layer for aggregating failures.
//
// Predicates are plain functions over text:
//
//	validator.IsValidEmail("jane@example.com") // true
//	validator.IsValidUsername("jane_doe")      // true
//	validator.IsInRange("abc", 4, 30)          // false
//
// Each predicate has a Rule constructor that carries a translation key from the
// widget message table. Rules are evaluated with Apply, which returns
// ValidationErrors holding the first failure of every field:
//
//	err := validator.Apply(
//	    validator.DisplayName("name", name),
//	    validator.Email("emailAddress", email),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, field := range verrs.Fields() {
//	        // look up verrs.First(field).TranslationKey
//	    }
//	}
//
// The package is stateless and safe for concurrent use. Username and display-name
// rules select the "invalid characters" key when the value contains characters
// outside [A-Za-z0-9] or starts with a digit, and the generic format key otherwise.
package validator
