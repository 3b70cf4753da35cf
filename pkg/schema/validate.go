package schema

// Schema is a map of field names to their field definitions.
// Example: {"model": {Type: String(), Required: true}, "retries": {Type: Int()}}
type Schema map[string]Field

// Validate checks if data conforms to the schema.
// Required fields must be present; present fields must match their type.
// Unknown fields are tolerated so clients can carry UI-only extras.
// Returns an error aggregating all validation failures found.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	var errs []error

	for fieldName, field := range schema {
		value, exists := data[fieldName]
		if !exists {
			if field.Required {
				errs = append(errs, &ValidationError{
					Key:    fieldName,
					Reason: "required",
					Value:  nil,
				})
			}
			continue
		}

		if err := field.Type.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}

// ApplyDefaults returns a copy of data with schema defaults filled in for
// absent fields. The input map is not modified.
func ApplyDefaults(schema Schema, data map[string]any) map[string]any {
	out := make(map[string]any, len(data)+len(schema))
	for k, v := range data {
		out[k] = v
	}
	for name, field := range schema {
		if _, exists := out[name]; !exists && field.Default != nil {
			out[name] = field.Default
		}
	}
	return out
}
