package locker

import "errors"

var errLockLost = errors.New("lock not owned by this holder")
