// Package wasmwork lets a thread's work function be backed by a compiled
// guest WASM module instead of a native Go function, adapted from the
// teacher project's wasm/executor.go — generalized from a one-shot
// Execute helper into a reusable Instance that is compiled once and can
// back the work function of any number of threads.
package wasmwork

import (
	"fmt"

	"github.com/wasmerio/wasmer-go/wasmer"

	"github.com/nmxmxh/cothread/internal/threadcore"
)

// Instance wraps one compiled module and the store/instance it was
// instantiated into, kept alive until Close rather than rebuilt for
// every call.
type Instance struct {
	store    *wasmer.Store
	instance *wasmer.Instance
	mainFunc wasmer.NativeFunction
}

// Load compiles wasmBytes and resolves its exported "main" function.
func Load(wasmBytes []byte) (*Instance, error) {
	engine := wasmer.NewEngine()
	store := wasmer.NewStore(engine)

	module, err := wasmer.NewModule(store, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("wasmwork: compile module: %w", err)
	}
	instance, err := wasmer.NewInstance(module, wasmer.NewImportObject())
	if err != nil {
		return nil, fmt.Errorf("wasmwork: instantiate module: %w", err)
	}
	mainFunc, err := instance.Exports.GetFunction("main")
	if err != nil {
		return nil, fmt.Errorf("wasmwork: resolve export %q: %w", "main", err)
	}

	return &Instance{store: store, instance: instance, mainFunc: mainFunc}, nil
}

// WorkFunc adapts the instance's guest "main" export into a
// threadcore.WorkFunc: every call (once per thread, when the trampoline
// first runs it) invokes the same loaded instance with the thread's four
// integer args.
func (w *Instance) WorkFunc() threadcore.WorkFunc {
	return func(a1, a2, a3, a4 int) {
		if _, err := w.mainFunc(int32(a1), int32(a2), int32(a3), int32(a4)); err != nil {
			panic(fmt.Sprintf("wasmwork: guest main trapped: %v", err))
		}
	}
}

// Close releases the underlying wasmer store.
func (w *Instance) Close() {
	w.store.Close()
}
