package domain

import "errors"

var (
	ErrNotAuthenticated    = errors.New("no authenticated user")
	ErrRemoteStatus        = errors.New("backend returned a non-success status")
	ErrTransport           = errors.New("backend unreachable")
	ErrDecode              = errors.New("malformed backend response")
	ErrDestinationNotFound = errors.New("destination not found")
	ErrQueueClosed         = errors.New("intent queue closed")
	ErrUnknownIntent       = errors.New("unknown intent")
)
