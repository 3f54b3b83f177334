package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is any failure reported by the hosted backend: network-level
// problems are wrapped by the caller, protocol-level ones carry the HTTP
// status and the backend's error code.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("remote operation failed (%d %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("remote operation failed (%d): %s", e.Status, e.Message)
}

// codeNoRows is the backend's "no rows returned" code for single-row reads.
const codeNoRows = "PGRST116"

// IsNotFound reports whether err is the backend's way of saying the
// requested row does not exist.
func IsNotFound(err error) bool {
	var re *Error
	if !errors.As(err, &re) {
		return false
	}
	return re.Status == http.StatusNotFound || re.Code == codeNoRows
}
