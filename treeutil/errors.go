// errors.go — sentinel errors for the treeutil package.

package treeutil

import "errors"

// ErrLeafCount indicates Unflatten received a leaf sequence whose length
// does not match the structure descriptor.
var ErrLeafCount = errors.New("treeutil: leaf count does not match structure")

// ErrStructureMismatch indicates two trees passed to a pairwise transform do
// not share one structure.
var ErrStructureMismatch = errors.New("treeutil: tree structures differ")

// ErrNilHandler indicates RegisterNode received a handler with a missing
// flatten or unflatten function.
var ErrNilHandler = errors.New("treeutil: node handler is incomplete")
