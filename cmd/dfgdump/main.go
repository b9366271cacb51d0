// Command dfgdump writes a prefiltered DFG lookup table as a PNG, with the
// Fresnel scale in the red channel and the bias in green. Useful for
// eyeballing the split-sum integration against published references.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"pbr-renderer/internal/shading"
)

func main() {
	size := flag.Int("size", 128, "Table resolution per axis")
	samples := flag.Int("samples", 1024, "Monte Carlo samples per texel")
	approx := flag.Bool("approx", false, "Dump the analytic approximation instead of integrating")
	output := flag.String("o", "dfg.png", "Output PNG path")

	flag.Parse()

	if *size < 2 {
		fmt.Fprintln(os.Stderr, "Error: -size must be at least 2")
		os.Exit(1)
	}

	var dfg shading.DFG
	if *approx {
		dfg = shading.DFGApprox{}
	} else {
		fmt.Printf("Integrating %dx%d table, %d samples per texel...\n", *size, *size, *samples)
		start := time.Now()
		dfg = shading.NewDFGTable(*size, *samples)
		fmt.Printf("Done in %.2fs\n", time.Since(start).Seconds())
	}

	n := *size
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		// Roughness grows downward, matching the table layout.
		roughness := (float64(y) + 0.5) / float64(n)
		for x := 0; x < n; x++ {
			noV := (float64(x) + 0.5) / float64(n)
			d := dfg.Sample(roughness, noV)

			i := img.PixOffset(x, y)
			img.Pix[i] = quantize(d[0])
			img.Pix[i+1] = quantize(d[1])
			img.Pix[i+2] = 0
			img.Pix[i+3] = 255
		}
	}

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: png encode: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *output)
}

func quantize(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
