//go:build js && wasm

package obslog

import "syscall/js"

// redirectToPlatformSink mirrors log lines to the browser/JS console when
// running the hosted build under GOOS=js.
func redirectToPlatformSink(level Level, line string) {
	console := js.Global().Get("console")
	if console.Type() == js.TypeNull || console.Type() == js.TypeUndefined {
		return
	}
	method := "log"
	switch level {
	case Debug:
		method = "debug"
	case Warn:
		method = "warn"
	case Error, Fatal:
		method = "error"
	}
	console.Call(method, line)
}
