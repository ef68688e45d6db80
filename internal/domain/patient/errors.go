package patient

import "errors"

var ErrNotFound = errors.New("patient not found")
