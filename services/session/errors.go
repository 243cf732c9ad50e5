package session

// AuthenticationError indicates a failed login: invalid credentials, an
// issuer rejection, or a network failure. Message carries the issuer's
// message when one was available.
type AuthenticationError struct {
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "login failed"
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// RegistrationError indicates a failed registration, analogous to
// AuthenticationError.
type RegistrationError struct {
	Message string
	Err     error
}

func (e *RegistrationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "registration failed"
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}
