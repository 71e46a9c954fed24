// Package regnet implements a panoramic U-Net for image-to-image
// regression.
//
// The network is an encoder/decoder with skip connections. Its conv units
// pad explicitly, so the border policy is a configuration choice; the
// panoramic policy wraps the width axis circularly and replicates rows on
// the height axis, which suits equirectangular 360° images.
//
// Example:
//
//	backend := cpu.New()
//	net, err := regnet.New(regnet.DefaultConfig(), backend, regnet.WithSeed(1))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := net.Forward(input) // [N, 3, H, W] -> [N, 3, H, W]
//
// State dictionaries and weight files use the PyTorch module names, so
// weights exported from the reference PyTorch network load directly.
package regnet
