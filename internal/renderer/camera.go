// camera.go
package renderer

import (
	"math"

	"AsylumOcean/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinPitch float32 = -89.0
	MaxPitch float32 = 89.0
	MinFov   float32 = 1.0
	MaxFov   float32 = 45.0
)

type Camera struct {
	// HOT DATA - read every frame for view/projection
	Position mgl32.Vec3 // Camera position in world space
	Front    mgl32.Vec3 // Unit forward vector derived from Yaw/Pitch
	Right    mgl32.Vec3 // Unit right vector, normalize(Front x WorldUp)
	Up       mgl32.Vec3 // Up used for the view matrix and vertical movement
	Pitch    float32    // Degrees, clamped to [MinPitch, MaxPitch]
	Yaw      float32    // Degrees
	Fov      float32    // Vertical field of view in degrees, clamped to [MinFov, MaxFov]

	// COLD DATA - configuration and mouse tracking
	WorldUp      mgl32.Vec3
	Speed        float32 // Units per second
	Sensitivity  float32 // Degrees per pixel
	Near         float32
	Far          float32
	AspectRatio  float32
	LastX, LastY float64 // Previous cursor sample
	firstMouse   bool
}

// NewDefaultCamera places the camera above the water looking slightly down
// along -Z.
func NewDefaultCamera(width int32, height int32) *Camera {
	camera := Camera{
		Position:    mgl32.Vec3{0, 2, 5},
		Up:          mgl32.Vec3{0, 1, 0},
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Pitch:       -10.0,
		Yaw:         -90.0,
		Speed:       5,
		Sensitivity: 0.1,
		Fov:         45.0,
		Near:        0.1,
		Far:         1000.0,
		LastX:       float64(width) / 2,
		LastY:       float64(height) / 2,
		AspectRatio: float32(width) / float32(height),
		firstMouse:  true,
	}
	camera.updateCameraVectors()
	return &camera
}

// SetOrientation sets yaw and pitch in degrees, clamping pitch.
func (c *Camera) SetOrientation(yaw, pitch float32) {
	c.Yaw = yaw
	c.Pitch = mgl32.Clamp(pitch, MinPitch, MaxPitch)
	c.updateCameraVectors()
}

func (c *Camera) SetFov(fov float32) {
	c.Fov = mgl32.Clamp(fov, MinFov, MaxFov)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

// Apply integrates one frame of input: cursor and scroll events in arrival
// order, then movement for the held keys scaled by deltaTime.
func (c *Camera) Apply(sample input.Sample, deltaTime float32) {
	for _, ev := range sample.Events {
		switch e := ev.(type) {
		case input.CursorMoved:
			c.ProcessCursor(e.X, e.Y)
		case input.Scrolled:
			c.ProcessScroll(e.YOffset)
		}
	}
	c.ProcessKeyboard(sample.Keys, deltaTime)
}

// ProcessCursor turns an absolute cursor position into a look delta. The
// first sample only records the position so the view does not jump.
func (c *Camera) ProcessCursor(xpos, ypos float64) {
	if c.firstMouse {
		c.LastX = xpos
		c.LastY = ypos
		c.firstMouse = false
		return
	}

	xoffset := xpos - c.LastX
	yoffset := c.LastY - ypos // screen Y grows downward
	c.LastX = xpos
	c.LastY = ypos

	c.ProcessMouseMovement(float32(xoffset), float32(yoffset))
}

// ResetCursor makes the next cursor sample a fresh first sample.
func (c *Camera) ResetCursor() {
	c.firstMouse = true
}

func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32) {
	if !finite(xoffset) || !finite(yoffset) {
		return
	}
	xoffset *= c.Sensitivity
	yoffset *= c.Sensitivity

	// wrapped to (-360, 360)
	c.Yaw = float32(math.Mod(float64(c.Yaw+xoffset), 360))
	c.Pitch = mgl32.Clamp(c.Pitch+yoffset, MinPitch, MaxPitch)
	c.updateCameraVectors()
}

// ProcessScroll zooms: scrolling forward narrows the field of view.
func (c *Camera) ProcessScroll(yoffset float64) {
	if !finite(float32(yoffset)) {
		return
	}
	c.Fov = mgl32.Clamp(c.Fov-float32(yoffset), MinFov, MaxFov)
}

func (c *Camera) ProcessKeyboard(keys input.KeySet, deltaTime float32) {
	if deltaTime <= 0 {
		return
	}
	velocity := c.Speed * deltaTime
	c.Right = c.Front.Cross(c.Up).Normalize()

	if keys.Has(input.KeyForward) {
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	}
	if keys.Has(input.KeyBackward) {
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	}
	if keys.Has(input.KeyLeft) {
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	}
	if keys.Has(input.KeyRight) {
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	}
	if keys.Has(input.KeyUp) {
		c.Position = c.Position.Add(c.Up.Mul(velocity))
	}
	if keys.Has(input.KeyDown) {
		c.Position = c.Position.Sub(c.Up.Mul(velocity))
	}
}

func (c *Camera) updateCameraVectors() {
	yawRad := float64(mgl32.DegToRad(c.Yaw))
	pitchRad := float64(mgl32.DegToRad(c.Pitch))

	front := mgl32.Vec3{
		float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		float32(math.Sin(pitchRad)),
		float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}

	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
