package engine

import "errors"

var errNilPoller = errors.New("nil poller")

var errNilReporter = errors.New("nil reporter")
