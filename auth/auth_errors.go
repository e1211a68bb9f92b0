package auth

import "errors"

var (
	InvalidCredentialsErr = errors.New("invalid username or password")
	UserBlockedErr        = errors.New("user blocked")
	UnknownIdentityErr    = errors.New("unknown user identity")
)
