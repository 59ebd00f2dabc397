package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bouncy/internal/model"
)

func testGeometry() model.Geometry {
	return model.Geometry{
		WindowWidth:    300,
		WindowHeight:   200,
		WorkAreaLeft:   0,
		WorkAreaTop:    0,
		WorkAreaRight:  1920,
		WorkAreaBottom: 1080,
	}
}

func TestIntegrator_StepFromRest(t *testing.T) {
	in := NewIntegrator(DefaultConstants(), 0)
	body := &BodyState{PosX: 100, PosY: 100}

	bounces := in.Step(body, testGeometry())

	assert.Empty(t, bounces)
	assert.InDelta(t, 0.784, body.VelY, 1e-9)
	assert.Equal(t, 0.0, body.VelX)
	assert.Equal(t, 100, body.PosY, "sub-pixel velocity truncates to no movement")
	assert.Equal(t, int64(1), in.Steps())
	assert.Equal(t, DefaultTickInterval, in.Interval())
}

func TestIntegrator_TruncatesTowardZero(t *testing.T) {
	in := NewIntegrator(Constants{Gravity: 0, Friction: 0.98, BounceFactor: 0.5}, 0)
	body := &BodyState{PosX: 500, PosY: 500, VelX: -1.5, VelY: 1.9}

	in.Step(body, testGeometry())

	assert.Equal(t, 499, body.PosX)
	assert.Equal(t, 501, body.PosY)
}

func TestIntegrator_HorizontalDeadzone(t *testing.T) {
	in := NewIntegrator(DefaultConstants(), 0)
	body := &BodyState{PosX: 500, PosY: 500, VelX: 0.0101}

	in.Step(body, testGeometry())

	assert.Equal(t, 0.0, body.VelX)
}

func TestIntegrator_SkipsDraggedBody(t *testing.T) {
	in := NewIntegrator(DefaultConstants(), 0)
	body := &BodyState{PosX: 10, PosY: 10, VelX: 5, VelY: 5, Dragging: true}
	before := *body

	assert.Nil(t, in.Step(body, testGeometry()))
	assert.Equal(t, before, *body)
	assert.Equal(t, int64(0), in.Steps())
}

func TestIntegrator_Collide(t *testing.T) {
	geo := testGeometry()

	tests := []struct {
		name     string
		body     BodyState
		wantPos  model.Point
		wantVelX float64
		wantVelY float64
		edges    []model.Edge
	}{
		{
			name:     "top",
			body:     BodyState{PosX: 500, PosY: 0, VelY: -50},
			wantPos:  model.Point{X: 500, Y: 0},
			wantVelY: 25,
			edges:    []model.Edge{model.EdgeTop},
		},
		{
			name:     "above top",
			body:     BodyState{PosX: 500, PosY: -40, VelY: -50},
			wantPos:  model.Point{X: 500, Y: 0},
			wantVelY: 25,
			edges:    []model.Edge{model.EdgeTop},
		},
		{
			name:     "bottom",
			body:     BodyState{PosX: 500, PosY: 900, VelY: 10},
			wantPos:  model.Point{X: 500, Y: 880},
			wantVelY: -5,
			edges:    []model.Edge{model.EdgeBottom},
		},
		{
			name:     "left",
			body:     BodyState{PosX: -3, PosY: 500, VelX: -8},
			wantPos:  model.Point{X: 0, Y: 500},
			wantVelX: 4,
			edges:    []model.Edge{model.EdgeLeft},
		},
		{
			name:     "right",
			body:     BodyState{PosX: 1700, PosY: 500, VelX: 30},
			wantPos:  model.Point{X: 1620, Y: 500},
			wantVelX: -15,
			edges:    []model.Edge{model.EdgeRight},
		},
		{
			name:     "corner resolves y then x",
			body:     BodyState{PosX: 2000, PosY: 2000, VelX: 40, VelY: 60},
			wantPos:  model.Point{X: 1620, Y: 880},
			wantVelX: -20,
			wantVelY: -30,
			edges:    []model.Edge{model.EdgeBottom, model.EdgeRight},
		},
		{
			name:    "inside",
			body:    BodyState{PosX: 500, PosY: 500, VelX: 3, VelY: 3},
			wantPos: model.Point{X: 500, Y: 500}, wantVelX: 3, wantVelY: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewIntegrator(DefaultConstants(), 0)
			body := tt.body

			bounces := in.Collide(&body, geo)

			assert.Equal(t, tt.wantPos, body.Position())
			assert.InDelta(t, tt.wantVelX, body.VelX, 1e-9)
			assert.InDelta(t, tt.wantVelY, body.VelY, 1e-9)
			require.Len(t, bounces, len(tt.edges))
			for i, edge := range tt.edges {
				assert.Equal(t, edge, bounces[i].Edge)
			}
		})
	}
}

func TestIntegrator_BounceRecordsImpactSpeed(t *testing.T) {
	in := NewIntegrator(DefaultConstants(), 0)
	body := &BodyState{PosY: 0, VelY: -50}

	bounces := in.Collide(body, testGeometry())

	require.Len(t, bounces, 1)
	assert.Equal(t, model.AxisY, bounces[0].Axis)
	assert.InDelta(t, 50.0, bounces[0].Speed, 1e-9)
}

func TestIntegrator_StaysInsideWorkArea(t *testing.T) {
	geo := testGeometry()
	starts := []BodyState{
		{PosX: 100, PosY: 100, VelX: 4000, VelY: -4000},
		{PosX: 1500, PosY: 800, VelX: -250, VelY: 900},
		{PosX: 0, PosY: 0, VelX: 0, VelY: 0},
		{PosX: 800, PosY: 400, VelX: 1e6, VelY: 1e6},
	}

	for _, start := range starts {
		in := NewIntegrator(DefaultConstants(), 0)
		body := start
		for i := 0; i < 2000; i++ {
			in.Step(&body, geo)
			require.GreaterOrEqual(t, body.PosY, 0)
			require.LessOrEqual(t, body.PosY, geo.MaxY())
			require.GreaterOrEqual(t, body.PosX, 0)
			require.LessOrEqual(t, body.PosX, geo.MaxX())
		}
	}
}

func TestIntegrator_FrictionDecaysToZero(t *testing.T) {
	in := NewIntegrator(Constants{Gravity: 0, Friction: 0.98, BounceFactor: 0.5}, 0)
	geo := model.Geometry{
		WindowWidth: 300, WindowHeight: 200,
		WorkAreaRight: 100000, WorkAreaBottom: 100000,
	}
	body := &BodyState{PosX: 1000, PosY: 500, VelX: 100}

	steps := 0
	for body.VelX != 0 && steps < 1000 {
		in.Step(body, geo)
		steps++
	}
	require.Equal(t, 0.0, body.VelX, "velocity must reach the deadzone")
	assert.Less(t, steps, 1000)

	for i := 0; i < 100; i++ {
		in.Step(body, geo)
		require.Equal(t, 0.0, body.VelX)
	}
}

func TestIntegrator_ComesToRest(t *testing.T) {
	in := NewIntegrator(DefaultConstants(), 0)
	geo := testGeometry()
	body := &BodyState{PosX: 800, PosY: 100, VelX: 20, VelY: -10}

	for i := 0; i < 5000 && !body.Resting(geo); i++ {
		in.Step(body, geo)
	}

	assert.True(t, body.Resting(geo))
	assert.Equal(t, geo.MaxY(), body.PosY)
}
