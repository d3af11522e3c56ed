package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrMissingReference indicates that an entity points at another entity that
// does not exist (e.g. an override whose target item was deleted). Scenario
// resolution excludes the offending entity instead of failing the projection.
var ErrMissingReference = errors.New("referenced resource does not exist")
