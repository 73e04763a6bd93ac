package core

import "fmt"

// Messages returned to submitters.
const (
	MsgFieldsRequired  = "All fields must be filled!"
	MsgInvalidMobile   = "Invalid mobile number(s)."
	MsgMobilesMatch    = "Business and Owner Mobile must be different."
	MsgInvalidItem     = "Invalid item entry!"
	MsgSubmitted       = "Form submitted successfully!"
	MsgDatabaseFailure = "Database error!"
)

// ValidationError is a defect in the submitted data. Reason is safe to show
// to the submitter as-is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// StorageError is any failure reading or writing persisted state.
// The wrapped cause is for operators only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
