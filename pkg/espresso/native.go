//go:build espresso_native && cgo

package espresso

/*
#cgo LDFLAGS: -lespresso
#include <stdlib.h>

char *run_espresso_from_data(const char *data, unsigned int length, char **out);
char *run_d1merge_from_data(const char *data, unsigned int length, char **out);
*/
import "C"

import (
	"context"
	"sync"
	"unsafe"
)

// espresso keeps its cube description in process globals.
var nativeMu sync.Mutex

// cBuffer is a NUL-terminated string allocated by the C library.
type cBuffer struct {
	p *C.char
}

func (b cBuffer) Bytes() []byte {
	if b.p == nil {
		return nil
	}
	return []byte(C.GoString(b.p))
}

func (b cBuffer) Release() {
	C.free(unsafe.Pointer(b.p))
}

// cString copies s into C memory owned by the returned buffer.
func cString(s string) cBuffer {
	return cBuffer{p: C.CString(s)}
}

type nativeSolver struct {
	op Operation
}

// NewNative returns a solver calling the espresso library linked into
// the process. The call cannot be interrupted once started.
func NewNative(op Operation) Solver {
	return nativeSolver{op: op}
}

func (s nativeSolver) Solve(ctx context.Context, doc []byte) (string, error) {
	if err := checkDocument(doc); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data := C.CBytes(doc)
	defer C.free(data)

	nativeMu.Lock()
	defer nativeMu.Unlock()

	var out *C.char
	switch s.op {
	case Merge:
		C.run_d1merge_from_data((*C.char)(data), C.uint(len(doc)), &out)
	default:
		C.run_espresso_from_data((*C.char)(data), C.uint(len(doc)), &out)
	}
	return takeOwned(cBuffer{p: out})
}
