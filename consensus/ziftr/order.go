package ziftr

import "encoding/binary"

// NumOrders is the number of distinct primitive orderings.
const NumOrders = 24

// Order is a permutation of the four chained primitives.
type Order [numPrimitives]PrimitiveID

// orders lists every permutation of {0,1,2,3} in lexicographic order. The
// position of each entry is consensus critical.
var orders = [NumOrders]Order{
	{0, 1, 2, 3},
	{0, 1, 3, 2},
	{0, 2, 1, 3},
	{0, 2, 3, 1},
	{0, 3, 1, 2},
	{0, 3, 2, 1},
	{1, 0, 2, 3},
	{1, 0, 3, 2},
	{1, 2, 0, 3},
	{1, 2, 3, 0},
	{1, 3, 0, 2},
	{1, 3, 2, 0},
	{2, 0, 1, 3},
	{2, 0, 3, 1},
	{2, 1, 0, 3},
	{2, 1, 3, 0},
	{2, 3, 0, 1},
	{2, 3, 1, 0},
	{3, 0, 1, 2},
	{3, 0, 2, 1},
	{3, 1, 0, 2},
	{3, 1, 2, 0},
	{3, 2, 0, 1},
	{3, 2, 1, 0},
}

// OrderAt returns the permutation stored at index i. It panics if i is not in
// [0, NumOrders).
func OrderAt(i int) Order {
	return orders[i]
}

// OrderIndex selects the permutation for a seed hash: its first four bytes as
// a little-endian word, modulo NumOrders.
func OrderIndex(seed *Digest) int {
	return int(binary.LittleEndian.Uint32(seed[:4]) % NumOrders)
}
