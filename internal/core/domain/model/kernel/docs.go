// Package kernel contains shared value objects used across all aggregates of
// the order-management core. These are the building blocks that every bounded
// context depends on: identifiers and the constructor-guard primitives that
// keep them valid.
package kernel
