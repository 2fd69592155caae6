package usecase

import (
	"fmt"
	"net/http"
)

// ImportErrorKind names one entry of the fixed import failure taxonomy.
type ImportErrorKind string

const (
	KindMissingURL         ImportErrorKind = "missing_url"
	KindInvalidURL         ImportErrorKind = "invalid_url"
	KindDisallowedScheme   ImportErrorKind = "disallowed_scheme"
	KindDisallowedHost     ImportErrorKind = "disallowed_host"
	KindMissingCredential  ImportErrorKind = "missing_credential"
	KindFetchFailed        ImportErrorKind = "fetch_failed"
	KindFetchTimeout       ImportErrorKind = "fetch_timeout"
	KindAllModelsExhausted ImportErrorKind = "all_models_exhausted"
	KindModelAuth          ImportErrorKind = "model_auth"
	KindUnparsableOutput   ImportErrorKind = "unparsable_output"
	KindIncompleteRecipe   ImportErrorKind = "incomplete_recipe"
	KindUnexpected         ImportErrorKind = "unexpected"
)

// ImportError is the only error type Import returns. Message is safe to show
// to callers; Err holds the internal cause and is only logged.
type ImportError struct {
	Kind    ImportErrorKind
	Status  int
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func newImportError(kind ImportErrorKind, cause error) *ImportError {
	e := &ImportError{Kind: kind, Err: cause}
	switch kind {
	case KindMissingURL:
		e.Status, e.Message = http.StatusBadRequest, "A recipe URL is required."
	case KindInvalidURL:
		e.Status, e.Message = http.StatusBadRequest, "That doesn't look like a valid URL."
	case KindDisallowedScheme:
		e.Status, e.Message = http.StatusBadRequest, "Only http and https URLs can be imported."
	case KindDisallowedHost:
		e.Status, e.Message = http.StatusBadRequest, "Importing from this address is not allowed."
	case KindMissingCredential:
		e.Status, e.Message = http.StatusInternalServerError, "Recipe import is not configured on this server."
	case KindFetchFailed:
		e.Status, e.Message = http.StatusBadRequest, "Couldn't fetch that page."
	case KindFetchTimeout:
		e.Status, e.Message = http.StatusBadRequest, "The page took too long to respond."
	case KindAllModelsExhausted:
		e.Status, e.Message = http.StatusTooManyRequests, "The recipe extractor is busy right now. Please try again in a minute."
	case KindModelAuth:
		e.Status, e.Message = http.StatusUnauthorized, "The recipe extractor rejected the server's credentials."
	case KindUnparsableOutput:
		e.Status, e.Message = http.StatusInternalServerError, "Couldn't read the recipe extracted from that page."
	case KindIncompleteRecipe:
		e.Status, e.Message = http.StatusBadRequest, "Couldn't find a complete recipe on that page."
	default:
		e.Kind = KindUnexpected
		e.Status, e.Message = http.StatusInternalServerError, "Something went wrong while importing. Please try again later."
	}
	return e
}

func fetchFailedWithStatus(statusCode int, cause error) *ImportError {
	e := newImportError(KindFetchFailed, cause)
	e.Message = fmt.Sprintf("Couldn't fetch that page (status %d).", statusCode)
	return e
}
