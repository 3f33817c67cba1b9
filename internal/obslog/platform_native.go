//go:build !js || !wasm

package obslog

// redirectToPlatformSink is a no-op on native targets; Raw/log already wrote
// to the configured io.Writer.
func redirectToPlatformSink(level Level, line string) {}
