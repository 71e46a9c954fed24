// Package serialization reads and writes model weights in the SafeTensors
// format used by HuggingFace and PyTorch exports.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, tensor name -> {dtype, shape, data_offsets}]
//	  [Tensor data: raw little-endian bytes]
//
// Tensors are always materialized as float32. F32 is written; F32, F64, F16
// and BF16 are read and converted on load.
//
// Example usage:
//
//	// Save a state dictionary
//	if err := serialization.WriteSafeTensors("model.safetensors", model.StateDict(), nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load it back
//	reader, err := serialization.Open("model.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
//	stateDict, err := reader.ReadStateDict(tensor.CPU)
package serialization
