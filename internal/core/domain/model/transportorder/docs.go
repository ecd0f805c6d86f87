// Package transportorder holds transport orders as far as bin picking is concerned:
// the order and its read-only SKU requirement manifest (OrderBin).
package transportorder
