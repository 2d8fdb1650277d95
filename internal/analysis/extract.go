package analysis

import "strings"

// FindField returns the detected value of the first summary field whose
// type matches name case-insensitively. It returns nil when no field
// matches, or when the first matching field carries no detected value;
// it does not fall through to later fields of the same type.
func FindField(fields []SummaryField, name string) *string {
	for _, field := range fields {
		if strings.EqualFold(field.Type, name) {
			return field.Value
		}
	}
	return nil
}
