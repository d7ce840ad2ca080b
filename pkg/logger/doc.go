// Package logger provides a thin factory around Go's slog package with
// functional options for configuration plus helper attribute constructors
// shared across toastkit packages.
//
// The package standardises structured logging by exposing a single factory –
// New – that creates a *slog.Logger configured by a set of Option functions.
// These options allow you to:
//
//   • Select an output format (text or json)
//   • Set the minimum log level
//   • Supply default slog.Attr values applied to every record
//   • Apply per-environment presets via WithDevelopment and WithProduction
//
// Helper constructors such as Error, Component, ToastID, and Scope live in
// attr.go and return commonly-used slog.Attr instances to keep attribute
// naming consistent across the codebase.
//
// # Usage
//
//	import "github.com/toastkit/toastkit/pkg/logger"
//
//	func main() {
//	    log := logger.New(logger.WithDevelopment("toastkit-demo"))
//	    logger.SetAsDefault(log)
//
//	    log.Info("toast dismissed",
//	        logger.ToastID(id),
//	        logger.Duration(time.Since(start)),
//	    )
//	}
//
// # Error Handling
//
// The Error helper produces an attribute only when the supplied error value
// is non-nil allowing calls like:
//
//	log.Info("operation finished", logger.Error(err))
//
// without an additional nil check.
package logger
