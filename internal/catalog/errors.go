package catalog

import "fmt"

// ValidationError reports a rejected manual add: the one user-facing
// required field (name) was empty after trimming.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is empty", e.Field)
}

// DuplicateSourceError reports an attempt to merge a file whose name matches
// an already-loaded batch. The store is left untouched.
type DuplicateSourceError struct {
	FileName string
}

func (e *DuplicateSourceError) Error() string {
	return fmt.Sprintf("file %q is already loaded", e.FileName)
}

// NotFoundError reports an edit, delete or batch removal referencing an id
// that is not (or no longer) in the store.
type NotFoundError struct {
	Kind string // "record" or "source batch"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
