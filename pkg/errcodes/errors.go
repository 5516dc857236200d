package errcodes

import (
	"fmt"
	"net/http"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		http.StatusNotFound,
		resource + " not found.",
		"not_found",
	}
}

// DuplicateAuthor indicates an author with the same name (compared
// case-insensitively) already exists.
func DuplicateAuthor(name string) error {
	return &Error{
		http.StatusConflict,
		fmt.Sprintf("Author %q already exists.", name),
		"duplicate_author",
	}
}

// DuplicateISBN indicates a book with the same ISBN already exists.
func DuplicateISBN(isbn string) error {
	return &Error{
		http.StatusConflict,
		fmt.Sprintf("A book with ISBN %s already exists.", isbn),
		"duplicate_isbn",
	}
}

// DuplicateTitleForAuthor indicates the author already has a book with this
// title (compared case-insensitively).
func DuplicateTitleForAuthor(title string) error {
	return &Error{
		http.StatusConflict,
		fmt.Sprintf("The author already has a book titled %q.", title),
		"duplicate_title_for_author",
	}
}

// ExternalMismatch indicates the bibliographic service returned a confirmed
// record whose title disagrees with the submitted one.
func ExternalMismatch(title, remoteTitle string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		fmt.Sprintf("Title %q does not match OpenLibrary title %q for this ISBN.", title, remoteTitle),
		"external_mismatch",
	}
}

// TransactionFailure is the generic failure surfaced when a mutation could
// not be applied. The underlying cause is logged, never shown.
func TransactionFailure() error {
	return &Error{
		http.StatusInternalServerError,
		"An error occurred.",
		"transaction_failure",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		fmt.Sprintf("Unknown Parameter %q", param),
		"unknown_parameter",
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_type_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_error",
	}
}

func MalformedPayload() error {
	return &Error{
		http.StatusBadRequest,
		"Malformed Payload",
		"malformed_payload",
	}
}

func EmptyRequestBody() error {
	return &Error{
		http.StatusBadRequest,
		"Request body can't be empty.",
		"empty_request_body",
	}
}

func UnsupportedMediaType() error {
	return &Error{
		http.StatusUnsupportedMediaType,
		"Unsupported Media Type",
		"unsupported_media_type",
	}
}
