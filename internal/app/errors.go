package service

import "errors"

// ErrNotStarted is returned by queries issued before Start or after Stop.
var ErrNotStarted = errors.New("service not started")
