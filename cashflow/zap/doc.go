// Package zap provides adapters and helpers around zap-based logging.
//
// It bridges the cashflow/log abstraction to zap while preserving structured
// fields and a runtime-adjustable level.
package zap
