package renderer

import (
	"math"
	"math/rand"
	"testing"

	"AsylumOcean/internal/input"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultCamera(t *testing.T) {
	cam := NewDefaultCamera(1920, 1080)

	require.NotNil(t, cam)
	assert.Equal(t, mgl32.Vec3{0, 2, 5}, cam.Position)
	assert.Equal(t, float32(-90), cam.Yaw)
	assert.Equal(t, float32(-10), cam.Pitch)
	assert.Equal(t, float32(45), cam.Fov)
	assert.InDelta(t, 1920.0/1080.0, cam.AspectRatio, 1e-6)
	assert.InDelta(t, 1.0, cam.Front.Len(), 1e-5)

	// looking down -Z and a little below the horizon
	assert.Less(t, cam.Front.Z(), float32(0))
	assert.Less(t, cam.Front.Y(), float32(0))
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 5}
	cam.SetOrientation(-90, 0)

	view := cam.GetViewMatrix()

	assert.Equal(t, float32(1), view.At(3, 3))
	// the camera position maps to the eye-space origin
	eye := view.Mul4x1(cam.Position.Vec4(1))
	assert.InDelta(t, 0, eye.Vec3().Len(), 1e-5)
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	proj := cam.GetProjectionMatrix()

	assert.Equal(t, float32(0), proj.At(3, 3))
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 1000), proj)
}

func TestFirstCursorSampleDoesNotMoveView(t *testing.T) {
	for _, pos := range [][2]float64{{0, 0}, {5000, -300}, {960, 540}} {
		cam := NewDefaultCamera(1920, 1080)
		yaw, pitch, front := cam.Yaw, cam.Pitch, cam.Front

		cam.ProcessCursor(pos[0], pos[1])

		assert.Equal(t, yaw, cam.Yaw)
		assert.Equal(t, pitch, cam.Pitch)
		assert.Equal(t, front, cam.Front)
	}
}

func TestCursorDeltaScaledAndInverted(t *testing.T) {
	cam := NewDefaultCamera(1920, 1080)
	cam.SetOrientation(-90, 0)

	cam.ProcessCursor(100, 100)
	cam.ProcessCursor(110, 80) // right 10, up 20

	assert.InDelta(t, -89.0, cam.Yaw, 1e-4)
	assert.InDelta(t, 2.0, cam.Pitch, 1e-4)
}

func TestResetCursor(t *testing.T) {
	cam := NewDefaultCamera(1920, 1080)
	cam.ProcessCursor(0, 0)
	cam.ResetCursor()
	yaw := cam.Yaw

	cam.ProcessCursor(1000, 1000)
	assert.Equal(t, yaw, cam.Yaw)
}

func TestPitchAlwaysClamped(t *testing.T) {
	cam := NewDefaultCamera(1920, 1080)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		cam.ProcessMouseMovement(float32(rng.NormFloat64()*4000), float32(rng.NormFloat64()*4000))
		require.GreaterOrEqual(t, cam.Pitch, MinPitch)
		require.LessOrEqual(t, cam.Pitch, MaxPitch)
		require.InDelta(t, 1.0, cam.Front.Len(), 1e-4)
	}

	cam.ProcessMouseMovement(0, 1e9)
	assert.Equal(t, MaxPitch, cam.Pitch)
	cam.ProcessMouseMovement(0, -1e9)
	assert.Equal(t, MinPitch, cam.Pitch)
}

func TestMouseMovementIgnoresNonFinite(t *testing.T) {
	cam := NewDefaultCamera(1920, 1080)
	before := *cam

	cam.ProcessMouseMovement(float32(math.NaN()), 1)
	cam.ProcessMouseMovement(1, float32(math.Inf(1)))

	assert.Equal(t, before.Yaw, cam.Yaw)
	assert.Equal(t, before.Pitch, cam.Pitch)
}

func TestFovAlwaysClamped(t *testing.T) {
	cam := NewDefaultCamera(1920, 1080)
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 1000; i++ {
		cam.ProcessScroll(rng.NormFloat64() * 30)
		require.GreaterOrEqual(t, cam.Fov, MinFov)
		require.LessOrEqual(t, cam.Fov, MaxFov)
	}
}

func TestScrollForwardZoomsIn(t *testing.T) {
	cam := NewDefaultCamera(1920, 1080)

	cam.ProcessScroll(1)
	assert.Equal(t, float32(44), cam.Fov)

	cam.ProcessScroll(-10)
	assert.Equal(t, MaxFov, cam.Fov)

	cam.ProcessScroll(100)
	assert.Equal(t, MinFov, cam.Fov)
}

func TestKeyboardMovementDirections(t *testing.T) {
	tests := map[input.Key]mgl32.Vec3{
		input.KeyForward:  {0, 0, -1},
		input.KeyBackward: {0, 0, 1},
		input.KeyLeft:     {-1, 0, 0},
		input.KeyRight:    {1, 0, 0},
		input.KeyUp:       {0, 1, 0},
		input.KeyDown:     {0, -1, 0},
	}
	for key, dir := range tests {
		t.Run(key.String(), func(t *testing.T) {
			cam := NewDefaultCamera(1920, 1080)
			cam.SetOrientation(-90, 0)
			start := cam.Position

			cam.ProcessKeyboard(input.KeySet(0).With(key), 0.5)

			moved := cam.Position.Sub(start)
			want := dir.Mul(cam.Speed * 0.5)
			assert.InDelta(t, want.X(), moved.X(), 1e-4)
			assert.InDelta(t, want.Y(), moved.Y(), 1e-4)
			assert.InDelta(t, want.Z(), moved.Z(), 1e-4)
		})
	}
}

func TestKeyboardMovementScalesWithDeltaTime(t *testing.T) {
	keys := input.KeySet(0).With(input.KeyForward, input.KeyRight)

	displacement := func(dt float32) float32 {
		cam := NewDefaultCamera(1920, 1080)
		start := cam.Position
		cam.ProcessKeyboard(keys, dt)
		return cam.Position.Sub(start).Len()
	}

	for _, dt := range []float32{0.001, 0.004, 0.016} {
		assert.InDelta(t, 2*displacement(dt), displacement(2*dt), 1e-5)
	}
	assert.Equal(t, float32(0), displacement(0))
}

func TestApplyProcessesEventsBeforeMovement(t *testing.T) {
	cam := NewDefaultCamera(1920, 1080)
	cam.SetOrientation(-90, 0)
	start := cam.Position

	// turn 90 degrees right (900px * 0.1), then walk forward
	sample := input.Sample{
		Keys: input.KeySet(0).With(input.KeyForward),
		Events: []input.Event{
			input.CursorMoved{X: 0, Y: 0},
			input.CursorMoved{X: 900, Y: 0},
			input.Scrolled{YOffset: 5},
		},
	}
	cam.Apply(sample, 1)

	assert.InDelta(t, 0, cam.Yaw, 1e-3)
	assert.Equal(t, float32(40), cam.Fov)

	moved := cam.Position.Sub(start)
	assert.InDelta(t, cam.Speed, moved.X(), 1e-3)
	assert.InDelta(t, 0, moved.Z(), 1e-3)
}
