package pyrs

import (
	"math/big"
	"reflect"
	"unsafe"
)

const (
	estimatedValueBytes        = 24
	estimatedBigIntBytes       = 32
	estimatedStringHeaderBytes = 16
	estimatedSliceBaseBytes    = 24
	estimatedMapBaseBytes      = 48
	estimatedMapEntryBytes     = 32
	estimatedEnvBytes          = 24
	estimatedFunctionBytes     = 64
	estimatedCallFrameBytes    = 32
)

type memoryEstimator struct {
	seenEnvs    map[*Env]struct{}
	seenSlices  map[uintptr]struct{}
	seenStrings map[stringIdentity]struct{}
}

type stringIdentity struct {
	ptr uintptr
	len int
}

func newMemoryEstimator() *memoryEstimator {
	return &memoryEstimator{
		seenEnvs:    make(map[*Env]struct{}),
		seenSlices:  make(map[uintptr]struct{}),
		seenStrings: make(map[stringIdentity]struct{}),
	}
}

// checkMemory reports a MemoryError at pos once the estimated footprint of
// live bindings exceeds the quota.
func (exec *Execution) checkMemory(pos Position) error {
	if exec.memoryQuota <= 0 {
		return nil
	}
	if used := exec.estimateMemoryUsage(); used > exec.memoryQuota {
		return exec.errorAt(MemoryError, pos, "memory quota exceeded (%d bytes)", exec.memoryQuota)
	}
	return nil
}

// estimateMemoryUsage approximates the bytes held by every live frame. Shared
// list backing arrays and string data are counted once.
func (exec *Execution) estimateMemoryUsage() int {
	est := newMemoryEstimator()
	total := est.env(exec.root)
	for _, env := range exec.envStack {
		total += est.env(env)
	}
	total += len(exec.callStack) * estimatedCallFrameBytes
	return total
}

func (est *memoryEstimator) env(env *Env) int {
	if env == nil {
		return 0
	}
	if _, seen := est.seenEnvs[env]; seen {
		return 0
	}
	est.seenEnvs[env] = struct{}{}

	size := estimatedEnvBytes + 2*estimatedMapBaseBytes
	size += (len(env.values) + len(env.functions)) * estimatedMapEntryBytes
	for name, val := range env.values {
		size += estimatedStringHeaderBytes + len(name)
		size += est.value(val)
	}
	for name := range env.functions {
		size += estimatedStringHeaderBytes + len(name) + estimatedFunctionBytes
	}
	size += est.env(env.parent)
	return size
}

func (est *memoryEstimator) value(val Value) int {
	size := estimatedValueBytes
	switch val.Kind() {
	case KindInt:
		size += estimatedBigIntBytes + len(val.data.(*big.Int).Bits())*int(unsafe.Sizeof(big.Word(0)))
	case KindString:
		size += estimatedStringHeaderBytes + est.stringPayloadSize(val.Text())
	case KindList:
		size += est.slice(val.List())
	}
	return size
}

func (est *memoryEstimator) stringPayloadSize(str string) int {
	if len(str) == 0 {
		return 0
	}
	key := stringIdentity{
		ptr: uintptr(unsafe.Pointer(unsafe.StringData(str))),
		len: len(str),
	}
	if _, seen := est.seenStrings[key]; seen {
		return 0
	}
	est.seenStrings[key] = struct{}{}
	return len(str)
}

func (est *memoryEstimator) slice(values []Value) int {
	size := estimatedSliceBaseBytes + cap(values)*estimatedValueBytes
	if cap(values) == 0 {
		return size
	}

	id := reflect.ValueOf(values).Pointer()
	if id != 0 {
		if _, seen := est.seenSlices[id]; seen {
			return 0
		}
		est.seenSlices[id] = struct{}{}
	}

	for _, val := range values {
		size += est.value(val)
	}
	return size
}
