package evaluation

import "errors"

var ErrNotFound = errors.New("evaluation not found")
