// Package tensor decodes the typed arrays that make up a geometry foundry
// directory.
//
// Two on-disk encodings are recognised:
//
//	Extension | Encoding               | In-memory value
//	----------|------------------------|-----------------------------------
//	.npy      | NumPy binary tensor    | Numeric array (dtype, shape, bytes)
//	.txt      | newline-delimited text | Strings array, shape (n,)
//
// # Binary contract
//
// The .npy header (magic, version, descr, fortran_order, shape) is trusted as
// written by the upstream geometry conversion. The payload that follows the
// header is copied verbatim into the array; no byte swapping is ever
// performed. A descr whose byte order differs from the host, or a Fortran
// ordered payload, is rejected with a DecodeError rather than silently
// reinterpreted. Cross-architecture interchange is therefore unsupported.
//
// The payload length must equal product(shape) * element width exactly.
//
// # Bit views
//
// Word reads four raw payload bytes in host order as a uint32. Float32 is the
// same bits viewed through math.Float32frombits. Mixed records (where one
// slot of a float32 array carries an integer id) must be read with Word:
// converting the float value to an integer yields a different number for
// every id except zero.
package tensor
