package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/mathgl/mgl64"

	"pbr-renderer/internal/config"
	"pbr-renderer/internal/envmap"
	"pbr-renderer/internal/mathutil"
	"pbr-renderer/internal/mesh"
	"pbr-renderer/internal/raster"
	"pbr-renderer/internal/shading"
	"pbr-renderer/internal/tonemap"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	metallic := flag.Float64("metallic", -1, "Override metallic [0,1]")
	roughness := flag.Float64("roughness", -1, "Override perceptual roughness [0,1]")
	envPath := flag.String("env", "", "Equirectangular environment image (default: gradient sky)")
	meshPath := flag.String("mesh", "", "glTF scene file (default: built-in UV sphere)")
	gltfMaterial := flag.Bool("gltf-material", false, "Take base color and metallic/roughness from the glTF material")
	toneMapName := flag.String("tonemap", "", "Tone mapping operator: linear, reinhard, unreal, aces")
	size := flag.Int("size", 0, "Output image size in pixels (default: 512)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	output := flag.String("o", "", "Output image path, .webp or .png (default: render.webp)")
	grid := flag.Bool("grid", false, "Render a roughness x metallic sphere grid instead of a single frame")
	gridCells := flag.Int("grid-cells", 7, "Cells per grid axis")

	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Resolve(config.Flags{
		Metallic:  *metallic,
		Roughness: *roughness,
		EnvMap:    *envPath,
		Mesh:      *meshPath,
		ToneMap:   *toneMapName,
		Size:      *size,
		Workers:   *workers,
		Output:    *output,
	})

	op, err := tonemap.ForName(cfg.ToneMap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	probe, err := buildProbe(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}

	var dfg shading.DFG = shading.DFGApprox{}
	if cfg.DFGSize > 0 {
		fmt.Printf("Integrating %dx%d DFG table...\n", cfg.DFGSize, cfg.DFGSize)
		dfg = shading.NewDFGTable(cfg.DFGSize, 1024)
	}

	if *grid {
		if err := renderGrid(cfg, op, dfg, probe, *gridCells); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	m, factors, err := loadMesh(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}

	params := paramsFromConfig(cfg, op)
	if *gltfMaterial && factors.Found {
		// glTF factors are linear; Params.Albedo is an sRGB-authored color.
		params.Albedo = mathutil.LinearToSRGB(mgl64.Vec3{
			factors.BaseColor[0], factors.BaseColor[1], factors.BaseColor[2],
		})
		params.Metallic = factors.Metallic
		params.Roughness = factors.Roughness
		fmt.Printf("Material from glTF: metallic=%.2f roughness=%.2f\n", factors.Metallic, factors.Roughness)
	}

	cam := raster.NewOrbitCamera(3, 45, 1, 0.1, 100)
	eval := shading.NewEvaluator(params, dfg, probe, cam.InverseView())

	fmt.Printf("Rendering %dx%d (x%d supersample, %d workers, %s tone map)\n",
		cfg.RenderSize, cfg.RenderSize, cfg.Supersample, cfg.Workers, op)
	start := time.Now()

	img := raster.Render(m, cam, mgl64.Ident4(), shadeWith(eval), raster.Options{
		Width:       cfg.RenderSize,
		Height:      cfg.RenderSize,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Background:  backgroundFunc(probe, cam, params),
	})

	fmt.Printf("Done in %.2fs\n", time.Since(start).Seconds())

	if err := saveImage(cfg.Output, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", cfg.Output)
}

func buildProbe(cfg config.Config) (envmap.Probe, error) {
	if cfg.EnvMap == "" {
		return envmap.DefaultSky(), nil
	}
	return envmap.LoadEquirect(cfg.EnvMap)
}

func loadMesh(cfg config.Config) (*mesh.Mesh, mesh.PBRFactors, error) {
	if cfg.Mesh == "" {
		return mesh.NewUVSphere(1, 96, 48), mesh.PBRFactors{}, nil
	}
	return mesh.LoadGLTF(cfg.Mesh)
}

func paramsFromConfig(cfg config.Config, op tonemap.Operator) shading.Params {
	params := shading.Params{
		Albedo:             mgl64.Vec3(cfg.Albedo),
		Metallic:           cfg.Metallic,
		Roughness:          cfg.Roughness,
		ClearCoat:          cfg.ClearCoat,
		ClearCoatRoughness: cfg.ClearCoatRoughness,
		Anisotropy:         cfg.Anisotropy,
		EnergyCompensation: cfg.EnergyCompensation,
		Emissive:           mgl64.Vec3(cfg.Emissive),

		DirectionalLights: []shading.DirectionalLight{{
			Direction: mgl64.Vec3(cfg.LightDir),
			Color:     mgl64.Vec3(cfg.LightColor),
		}},

		IndirectDiffuseIntensity:  cfg.IndirectDiffuse,
		IndirectSpecularIntensity: cfg.IndirectSpecular,

		Exposure:        cfg.Exposure,
		ToneMap:         op,
		ExactVisibility: cfg.ExactVisibility,
	}

	for _, dl := range cfg.ExtraLights {
		params.DirectionalLights = append(params.DirectionalLights, shading.DirectionalLight{
			Direction: mgl64.Vec3(dl.Direction),
			Color:     mgl64.Vec3(dl.Color),
		})
	}
	for _, pl := range cfg.PointLights {
		params.PointLights = append(params.PointLights, shading.PointLight{
			Position: mgl64.Vec3(pl.Position),
			Color:    mgl64.Vec3(pl.Color),
			Range:    pl.Range,
		})
	}
	return params
}

func shadeWith(eval *shading.Evaluator) raster.ShadeFunc {
	return func(position, normal, tangent, bitangent mgl64.Vec3) mgl64.Vec3 {
		c, _ := eval.Shade(shading.FragmentInput{
			Position:  position,
			Normal:    normal,
			Tangent:   tangent,
			Bitangent: bitangent,
		})
		return c
	}
}

// backgroundFunc shows the environment behind the geometry, run through
// the same exposure, tone mapping, and display encoding as the surface.
func backgroundFunc(probe envmap.Probe, cam raster.Camera, params shading.Params) func(mgl64.Vec3) mgl64.Vec3 {
	viewToWorld := cam.InverseView()
	return func(ray mgl64.Vec3) mgl64.Vec3 {
		world := mathutil.TransformDirection(ray, viewToWorld)
		c := params.ToneMap.Map(probe.Radiance(world, 0).Mul(params.Exposure))
		if !params.ToneMap.EncodesGamma() {
			c = mathutil.LinearToSRGB(c)
		}
		return c
	}
}

func saveImage(path string, img *image.NRGBA) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("render: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".png") {
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("render: png encode: %w", err)
		}
		return nil
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("render: webp encode: %w", err)
	}
	return nil
}
