package messaging

import "errors"

var (
	ErrNotFound     = errors.New("message not found")
	ErrNoHRManagers = errors.New("no HR managers available")
	ErrNotRecipient = errors.New("not the message recipient")
	ErrEmptySubject = errors.New("subject is required")
	ErrEmptyBody    = errors.New("body is required")
)
