// Package serialization saves and loads Dense arrays in SafeTensors format.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, name -> {dtype, shape, data_offsets}, plus "__metadata__"]
//	  [Tensor data: raw little-endian bytes, in alphabetical name order]
//
// Only F64 tensors are written and accepted.
//
// Example usage:
//
//	learned := params[0].(*tensor.Array).Evaluate()
//	err := serialization.SaveSafeTensors("weights.safetensors",
//	    map[string]*tensor.Dense{"W": learned},
//	    map[string]string{"iterations": "10"})
//
//	arrays, meta, err := serialization.LoadSafeTensors("weights.safetensors")
package serialization
