package factory

import "errors"

var errEmptyServerName = errors.New("empty server name")

var errEmptyEnvironment = errors.New("empty environment")

var errInvalidQueryInterval = errors.New("invalid query interval")
