package main

import (
	"fmt"
	"image"
	"image/draw"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"pbr-renderer/internal/config"
	"pbr-renderer/internal/envmap"
	"pbr-renderer/internal/mesh"
	"pbr-renderer/internal/raster"
	"pbr-renderer/internal/shading"
	"pbr-renderer/internal/tonemap"
)

// renderGrid renders a cells x cells sweep of spheres, roughness growing
// left to right and metallic growing top to bottom, into one image.
// Cells are independent renders, so the worker pool runs over cells with
// a single-band renderer inside each.
func renderGrid(cfg config.Config, op tonemap.Operator, dfg shading.DFG, probe envmap.Probe, cells int) error {
	if cells < 2 {
		return fmt.Errorf("render: grid needs at least 2 cells per axis, got %d", cells)
	}

	cellSize := cfg.RenderSize / cells
	if cellSize < 16 {
		return fmt.Errorf("render: grid cells of %dpx are too small, raise -size", cellSize)
	}

	sphere := mesh.NewUVSphere(1, 64, 32)
	cam := raster.NewOrbitCamera(3, 45, 1, 0.1, 100)
	total := cells * cells

	fmt.Printf("Rendering %dx%d grid (%dpx cells, %d workers)\n", cells, cells, cellSize, cfg.Workers)
	start := time.Now()

	var done atomic.Int64
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				p := done.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					fmt.Printf("  [%d/%d] %.1f cells/sec\n", p, total, rate)
				}
			}
		}
	}()

	result := image.NewNRGBA(image.Rect(0, 0, cellSize*cells, cellSize*cells))

	cellChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range cellChan {
				row := idx / cells
				col := idx % cells

				params := paramsFromConfig(cfg, op)
				params.Roughness = float64(col) / float64(cells-1)
				params.Metallic = float64(row) / float64(cells-1)

				eval := shading.NewEvaluator(params, dfg, probe, cam.InverseView())
				cell := raster.Render(sphere, cam, mgl64.Ident4(), shadeWith(eval), raster.Options{
					Width:       cellSize,
					Height:      cellSize,
					Supersample: cfg.Supersample,
					Workers:     1,
					Background:  backgroundFunc(probe, cam, params),
				})

				// Workers write disjoint rectangles, so no locking.
				dst := image.Rect(col*cellSize, row*cellSize, (col+1)*cellSize, (row+1)*cellSize)
				draw.Draw(result, dst, cell, image.Point{}, draw.Src)
				done.Add(1)
			}
		}()
	}

	for i := 0; i < total; i++ {
		cellChan <- i
	}
	close(cellChan)
	wg.Wait()
	close(stop)

	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	if err := saveImage(cfg.Output, result); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", cfg.Output)
	return nil
}
