package shading

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDFGApproxRange(t *testing.T) {
	// The polynomial fit can dip a few percent outside [0,1] at the
	// degenerate grazing corner; anything beyond that is a regression.
	for r := 0.0; r <= 1.0; r += 0.05 {
		for noV := 0.0; noV <= 1.0; noV += 0.05 {
			dfg := DFGApprox{}.Sample(r, noV)
			assert.GreaterOrEqual(t, dfg[0], -0.05, "scale at r=%v noV=%v", r, noV)
			assert.LessOrEqual(t, dfg[0], 1.05)
			assert.GreaterOrEqual(t, dfg[1], -0.05)
			assert.LessOrEqual(t, dfg[1], 1.05)
		}
	}
}

func TestDFGTableMatchesApproxShape(t *testing.T) {
	if testing.Short() {
		t.Skip("table integration is slow")
	}
	table := NewDFGTable(32, 1024)

	// The polynomial is a fit of the same integral: both strategies must
	// agree within the fit's published error bounds.
	for _, r := range []float64{0.1, 0.3, 0.5, 0.8} {
		for _, noV := range []float64{0.2, 0.5, 0.9} {
			got := table.Sample(r, noV)
			want := DFGApprox{}.Sample(r, noV)
			assert.InDelta(t, want[0], got[0], 0.1, "scale at r=%v noV=%v", r, noV)
			assert.InDelta(t, want[1], got[1], 0.1, "bias at r=%v noV=%v", r, noV)
		}
	}
}

func TestDFGTableSampleClamps(t *testing.T) {
	table := &DFGTable{size: 2, data: []mgl64.Vec2{
		{0, 0}, {1, 0},
		{0, 1}, {1, 1},
	}}

	// Out-of-range coordinates clamp to the edge texels.
	corner := table.Sample(-1, -1)
	assert.Equal(t, mgl64.Vec2{0, 0}, corner)
	far := table.Sample(2, 2)
	assert.Equal(t, mgl64.Vec2{1, 1}, far)
}

// Both strategies plug into material preparation interchangeably.
func TestDFGStrategiesInterchangeable(t *testing.T) {
	if testing.Short() {
		t.Skip("table integration is slow")
	}
	geom := headOnGeometry()
	s := baseSurface()

	approx := PrepareMaterial(geom, s, DFGApprox{})
	tabled := PrepareMaterial(geom, s, NewDFGTable(32, 1024))

	require.NotZero(t, approx.DFG)
	assert.InDelta(t, approx.DFG[0], tabled.DFG[0], 0.1)
	assert.InDelta(t, approx.DFG[1], tabled.DFG[1], 0.1)
}

func TestEnvBRDFAppliesScaleAndBias(t *testing.T) {
	spec := mgl64.Vec3{0.5, 0.25, 0.0}
	out := EnvBRDF(spec, mgl64.Vec2{0.8, 0.1})
	assert.InDelta(t, 0.5*0.8+0.1, out[0], 1e-12)
	assert.InDelta(t, 0.25*0.8+0.1, out[1], 1e-12)
	assert.InDelta(t, 0.1, out[2], 1e-12)
}

func TestHammersleyStratified(t *testing.T) {
	const n = 256
	var sumX, sumY float64
	for i := 0; i < n; i++ {
		x, y := hammersley(uint32(i), n)
		assert.GreaterOrEqual(t, x, 0.0)
		assert.Less(t, x, 1.0)
		assert.GreaterOrEqual(t, y, 0.0)
		assert.Less(t, y, 1.0)
		sumX += x
		sumY += y
	}
	// A stratified set averages to ~0.5 per axis.
	assert.InDelta(t, 0.5, sumX/n, 0.01)
	assert.InDelta(t, 0.5, sumY/n, 0.01)
}
