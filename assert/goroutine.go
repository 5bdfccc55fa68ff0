package assert

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns an identify for a goroutine. it returns a result that
// is (a) different between goroutines and (b) consistent for a given
// goroutine. It is undoubtedly useful for but it should only ever be used for
// debugging or testing purposes.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// GoroutineLock enforces that every call site sharing a lock runs on the
// same goroutine. The cycle loop, the scheduler and the colorizer all run
// on one thread by contract; this is the runtime check for that contract,
// not a scheduling primitive.
type GoroutineLock struct {
	id  uint64
	set bool
}

// Check panics if this is not the first call and the calling goroutine
// differs from the one recorded on the first call. The first call to Check
// establishes the locked goroutine.
func (g *GoroutineLock) Check() {
	id := GetGoRoutineID()
	if !g.set {
		g.id = id
		g.set = true
		return
	}
	if g.id != id {
		panic(fmt.Sprintf("goroutine lock violation: locked to %d, called from %d", g.id, id))
	}
}

// Reset releases the lock so the next call to Check re-establishes it. Used
// between test cases that deliberately run on different goroutines.
func (g *GoroutineLock) Reset() {
	g.set = false
}
