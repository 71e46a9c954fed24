// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package regnet provides a panoramic U-Net for image-to-image regression.
//
// # Overview
//
// RegNet is a four-level encoder/decoder with skip connections:
//
//	inc -> down1 -> down2 -> down3 -> down4
//	                                    |
//	outc <- up4 <- up3 <- up2 <- up1 <--+
//
// Every conv unit pads explicitly. The default "pano" policy wraps the width
// axis circularly and replicates rows on the height axis, so the left and
// right edges of an equirectangular panorama are treated as neighbours.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/regnet"
//	    "github.com/born-ml/regnet/backend/cpu"
//	    "github.com/born-ml/regnet/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    net, err := regnet.New(regnet.DefaultConfig(), backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if _, err := regnet.LoadWeights("regnet.safetensors", net); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    out := net.Forward(x) // [N, 3, H, W] -> [N, 3, H, W]
//	}
//
// # Weights
//
// State dictionary keys use the PyTorch module names
// (inc.conv.conv.0.conv.weight, down1.conv.1.conv.0.norm.running_mean,
// outc.conv.bias, ...), so SafeTensors exports of PyTorch checkpoints load
// without renaming.
package regnet
