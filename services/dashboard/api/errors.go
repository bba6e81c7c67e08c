package api

import "errors"

var errNilHTTPHandler = errors.New("nil http handler")
var errInvalidID = errors.New("invalid id")
var errInvalidDate = errors.New("invalid date")
