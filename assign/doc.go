// Package assign implements room-type assignment over a FloorGraph: spawn,
// boss, critical path, required types, and default fill, in that fixed
// priority order. Constraints see the partial assignment built so far, so
// the order between steps is observable and part of the contract.
package assign
