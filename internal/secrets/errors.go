package secrets

import "fmt"

// AccessError is returned when the secret store cannot be reached, the secret
// does not exist, or the caller may not read it.
type AccessError struct {
	SecretName string
	Err        error
}

// Error reports the secret store's diagnostic unchanged.
func (e *AccessError) Error() string {
	return e.Err.Error()
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// FormatError is returned when the secret was read but does not hold a JSON
// document with an api_key field.
type FormatError struct {
	SecretName string
	Err        error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("secret %q is malformed: %v", e.SecretName, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
