package weather

// NetworkError is returned when the weather API cannot be reached or its body
// cannot be read as a JSON object. HTTP error statuses are not NetworkErrors.
type NetworkError struct {
	Op  string // "get" or "decode"
	Err error
}

// Error reports the underlying failure unchanged.
func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
