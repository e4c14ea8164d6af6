package services

// Authorize allows the caller only when it is the owner of the entity. For a
// task the owner is the owner of its project.
func Authorize(entityOwnerID, callerID uint64) error {
	if entityOwnerID != callerID {
		return ErrForbidden
	}
	return nil
}
