// Package wire provides the bounds-checked cursor and accumulator the chain
// adapters build their layouts with. Every short read surfaces as
// errs.ErrTruncated instead of a slice fault.
package wire
