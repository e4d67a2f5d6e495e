// Package log defines the cashflow logging interface and typed logging fields.
package log
