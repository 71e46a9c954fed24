// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/regnet/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: Pure Go, parallel over planes and output channels
//
// The operation set is the one image-to-image networks need: convolution,
// max pooling, explicit padding, bilinear resampling, instance and batch
// normalization, in-place activations and concatenation.
type Backend = tensor.Backend
