// Package driver provides the Driver aggregate used by dispatch.
package driver
