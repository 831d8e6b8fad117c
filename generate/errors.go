package generate

import "errors"

// ErrTooSmall indicates a size parameter below 1.
var ErrTooSmall = errors.New("generate: size must be at least 1")

// ErrBadImbalance indicates an imbalance larger than the total supply, which
// would require negative demand.
var ErrBadImbalance = errors.New("generate: imbalance exceeds total supply")
