package leave

import "errors"

var (
	ErrNotFound   = errors.New("leave request not found")
	ErrNotPending = errors.New("leave request is not pending")
)
