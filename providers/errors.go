package providers

import "fmt"

// ErrorKind classifies adapter and catalog failures internally. The external
// contract only exposes message strings.
type ErrorKind int

const (
	KindCredentialMissing ErrorKind = iota
	KindBackend
	KindCatalog
)

func (k ErrorKind) String() string {
	switch k {
	case KindCredentialMissing:
		return "credential_missing"
	case KindBackend:
		return "backend_error"
	case KindCatalog:
		return "catalog_error"
	default:
		return "unknown"
	}
}

// Error is the normalized failure shape shared by all adapters.
type Error struct {
	Kind     ErrorKind
	Provider Provider
	Message  string
}

func (e *Error) Error() string { return e.Message }

func credentialMissing(p Provider) *Error {
	return &Error{
		Kind:     KindCredentialMissing,
		Provider: p,
		Message:  fmt.Sprintf("missing API key for %s, add it in the settings configuration", p.Label()),
	}
}

func backendError(p Provider, msg string) *Error {
	return &Error{Kind: KindBackend, Provider: p, Message: msg}
}

func catalogError(p Provider, msg string) *Error {
	return &Error{Kind: KindCatalog, Provider: p, Message: msg}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
