package xerrors

// Unwrap flattens an errors.Join style error into its parts.
// Any other error, including nil, is returned as a single element slice.
func Unwrap(err error) []error {
	if err == nil {
		return nil
	}
	u, ok := err.(interface {
		Unwrap() []error
	})
	if !ok {
		return []error{err}
	}
	return u.Unwrap()
}
