package errors

import "fmt"

// Field returns an error instance that wraps the original error with
// additional information. It attaches the name of the field that the error
// applies to. Use FieldErrors to extract the list of field errors from an
// error instance.
// If given error is nil, nil is returned.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{
		field: fieldName,
		err:   Wrap(err, description),
	}
}

// AppendField is a shortcut function to club together error(s) with a field
// error. It always returns an error collection, even if given base is nil.
func AppendField(errs error, fieldName string, fieldErr error) error {
	if fieldErr == nil {
		return errs
	}
	return Append(errs, &fieldError{
		field: fieldName,
		err:   fieldErr,
	})
}

type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.field, e.err)
}

func (e *fieldError) Cause() error {
	return e.err
}

func (e *fieldError) Field() string {
	return e.field
}

// FieldErrors returns the list of all errors that are associated with given
// field name. This function unpacks error collections and traverses causes.
func FieldErrors(err error, fieldName string) []error {
	if err == nil {
		return nil
	}

	var res []error

	if u, ok := err.(unpacker); ok {
		for _, e := range u.Unpack() {
			res = append(res, FieldErrors(e, fieldName)...)
		}
		return res
	}

	for ; err != nil; err = cause(err) {
		if f, ok := err.(*fieldError); ok {
			if f.field == fieldName {
				res = append(res, f.err)
			}
			return res
		}
	}
	return res
}
