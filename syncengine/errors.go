package syncengine

import "errors"

var (
	// ErrUnauthenticated is returned by a RemoteStore when the credential is
	// missing, expired or no longer maps to a user
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrRemoteUnavailable covers transport failures, unexpected statuses and
	// malformed responses from the remote store
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrNoActiveContraction is returned when stopping a contraction that was never started
	ErrNoActiveContraction = errors.New("no contraction in progress")

	errNoMirror = errors.New("local mirror not set")
)

// recoverable reports whether err allows a write or read to fall back to the mirror
func recoverable(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable) || errors.Is(err, ErrUnauthenticated)
}
