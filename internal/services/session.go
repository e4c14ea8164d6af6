package services

// AuthSession resolves the identity of the caller of a service operation.
type AuthSession interface {
	// CurrentUserID returns ErrUnauthenticated when there is no caller.
	CurrentUserID() (uint64, error)
}

// Caller is an AuthSession for an already resolved user ID.
type Caller uint64

func (c Caller) CurrentUserID() (uint64, error) {
	if c == 0 {
		return 0, ErrUnauthenticated
	}
	return uint64(c), nil
}
