package animate

import (
	"strconv"
	"sync/atomic"
)

var idGen atomic.Uint64

// ID names one animation instance. IDs are never reused within a process.
type ID uint64

// NextID returns a fresh ID.
func NextID() ID {
	return ID(idGen.Add(1))
}

func (id ID) String() string {
	return "anim#" + strconv.FormatUint(uint64(id), 10)
}
