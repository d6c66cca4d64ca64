package errors

// NewResourceNotFoundError returns a new ErrNotFound error with kind
// KindResourceNotFound and the given message.
func NewResourceNotFoundError(message string, details Details) error {
	return Error{
		Code:    ErrNotFound,
		Kind:    KindResourceNotFound,
		Message: message,
		Details: details,
	}
}

// NewInternalError returns an ErrInternal error with the given message.
func NewInternalError(message string, details Details) error {
	return Error{
		Code:    ErrInternal,
		Message: message,
		Details: details,
	}
}

// NewInternalErrorFromErr returns an ErrInternal error wrapping the given one.
func NewInternalErrorFromErr(err error, message string, details Details) error {
	return Error{
		Code:    ErrInternal,
		Err:     err,
		Message: message,
		Details: details,
	}
}

// NewLoadingError returns an ErrLoading error with the given kind.
func NewLoadingError(kind Kind, message string, details Details) error {
	return Error{
		Code:    ErrLoading,
		Kind:    kind,
		Message: message,
		Details: details,
	}
}

// NewQueryToSQLError returns an ErrInternal error with kind KindQueryToSQL for
// queries that could not be built.
func NewQueryToSQLError(err error, details Details) error {
	return Error{
		Code:    ErrInternal,
		Kind:    KindQueryToSQL,
		Err:     err,
		Message: "query to sql",
		Details: details,
	}
}

// NewExecQueryError returns an ErrInternal error with kind KindDBQuery for the
// given failed query.
func NewExecQueryError(err error, message string, query string) error {
	return Error{
		Code:    ErrInternal,
		Kind:    KindDBQuery,
		Err:     err,
		Message: message,
		Details: Details{"query": query},
	}
}

// NewScanDBRowError returns an ErrInternal error with kind KindDBScan.
func NewScanDBRowError(err error, message string, query string) error {
	return Error{
		Code:    ErrInternal,
		Kind:    KindDBScan,
		Err:     err,
		Message: message,
		Details: Details{"query": query},
	}
}
