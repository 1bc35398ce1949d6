// set_finalizer.go ties the lifetime of native libav objects to the Go garbage collector.

package internal

import (
	"context"
	"runtime"

	"github.com/xaionaro-go/avframe/logger"
)

// SetFinalizerFree makes the garbage collector call Free on the object.
// The object must not be freed explicitly afterwards.
func SetFinalizerFree[T interface{ Free() }](
	ctx context.Context,
	freer T,
) {
	runtime.SetFinalizer(freer, func(freer T) {
		logger.Debugf(ctx, "freeing %T", freer)
		freer.Free()
	})
}
