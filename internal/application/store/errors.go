package store

import "errors"

var ErrRateLimited = errors.New("holder write rate limited")
