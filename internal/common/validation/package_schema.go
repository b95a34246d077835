package validation

import "sync"

// PackageSchema describes one catalog package document as stored in the
// seed file and the search index. Unknown category tags are accepted here
// and dropped to "unset" by the catalog layer.
const PackageSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "name", "duration"],
  "properties": {
    "id":               {"type": "string", "minLength": 1},
    "slug":             {"type": "string"},
    "name":             {"type": "string", "minLength": 1},
    "shortDescription": {"type": "string"},
    "price":            {"type": ["number", "null"], "minimum": 0},
    "duration":         {"type": "string"},
    "type":             {"type": "string"},
    "rating":           {"type": ["number", "null"], "minimum": 0, "maximum": 5},
    "reviewCount":      {"type": ["integer", "null"], "minimum": 0},
    "destinations":     {"type": "array", "items": {"type": "string"}},
    "highlights":       {"type": "array", "items": {"type": "string"}},
    "featured":         {"type": "boolean"},
    "groupSizeMax":     {"type": "integer", "minimum": 0}
  }
}`

var (
	packageValidator     *Validator
	packageValidatorErr  error
	packageValidatorOnce sync.Once
)

// PackageValidator returns the shared validator for PackageSchema.
func PackageValidator() (*Validator, error) {
	packageValidatorOnce.Do(func() {
		packageValidator, packageValidatorErr = NewValidator(PackageSchema)
	})
	return packageValidator, packageValidatorErr
}
