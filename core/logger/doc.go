// Package logger provides the application's structured zap logger.
//
// The CLI defaults to console encoding so pass counts and skip warnings are
// readable during a run; json encoding is available for service deployments.
package logger
