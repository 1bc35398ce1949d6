// pool.go implements a pool for reusing astiav.Frame objects.

package frame

import (
	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avframe/pool"
)

// Pool holds native frames. Put unreferences the buffers; a dropped frame
// is freed by its finalizer.
var Pool = pool.NewPool(
	astiav.AllocFrame,
	func(p *astiav.Frame) { p.Unref() },
	func(p *astiav.Frame) { p.Free() },
)

func cloneAsReferenced(src *astiav.Frame) (*astiav.Frame, error) {
	dst := Pool.Get()
	if err := dst.Ref(src); err != nil {
		Pool.Put(dst)
		return nil, err
	}
	return dst, nil
}
