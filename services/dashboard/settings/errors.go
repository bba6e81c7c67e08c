package settings

import "errors"

var errEmptyPath = errors.New("empty settings file path")
var errMalformedSettings = errors.New("malformed settings file")
