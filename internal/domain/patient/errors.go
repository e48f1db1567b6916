package patient

import "errors"

// ErrEmailTaken means the email is already registered. Registration treats
// email as the patient's natural key.
var ErrEmailTaken = errors.New("email already registered")
