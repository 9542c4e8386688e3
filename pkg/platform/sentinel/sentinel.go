package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Collaborator clients return
// these (wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: the collaborator answered but has no such record
//   - ErrUnavailable: the collaborator could not be reached or answered late
//   - ErrBadData: the collaborator answered with a body we cannot decode
//   - ErrRejected: the collaborator refused the request
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
	ErrBadData     = errors.New("bad data")
	ErrRejected    = errors.New("rejected")
)
