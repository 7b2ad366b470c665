// Package rendertest records the draw calls and uniform writes of a frame so
// rendering code can be tested without a GL context.
package rendertest

import (
	"AsylumOcean/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// DeviceTarget is the Call.Target of calls made on the Recorder itself.
const DeviceTarget = "device"

type Call struct {
	Target string // DeviceTarget or a program name
	Op     string
	Name   string // uniform name, empty for device calls
	Value  any
}

type TextureBinding struct {
	Unit    uint32
	Texture uint32
}

// Recorder implements renderer.Device and hands out Programs that log into
// the same call list, so the interleaving of passes is observable.
type Recorder struct {
	Calls []Call
}

var _ renderer.Device = (*Recorder)(nil)

func (r *Recorder) add(target, op, name string, value any) {
	r.Calls = append(r.Calls, Call{Target: target, Op: op, Name: name, Value: value})
}

func (r *Recorder) Clear(color mgl32.Vec4) {
	r.add(DeviceTarget, "Clear", "", color)
}

func (r *Recorder) SetDepthFunc(fn renderer.DepthFunc) {
	r.add(DeviceTarget, "SetDepthFunc", "", fn)
}

func (r *Recorder) BindTexture(unit uint32, texture uint32) {
	r.add(DeviceTarget, "BindTexture", "", TextureBinding{Unit: unit, Texture: texture})
}

func (r *Recorder) Draw(buffers renderer.MeshBuffers) {
	r.add(DeviceTarget, "Draw", "", buffers)
}

func (r *Recorder) Reset() {
	r.Calls = nil
}

// Ops lists the calls as "target.Op" strings, uniform writes included.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Target + "." + c.Op
	}
	return ops
}

// Filter returns the calls with the given target and op. An empty op
// matches every op of target.
func (r *Recorder) Filter(target, op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Target == target && (op == "" || c.Op == op) {
			out = append(out, c)
		}
	}
	return out
}

// Uniforms returns the last value written to each uniform of program.
func (r *Recorder) Uniforms(program string) map[string]any {
	values := make(map[string]any)
	for _, c := range r.Calls {
		if c.Target == program && c.Name != "" {
			values[c.Name] = c.Value
		}
	}
	return values
}

// Program returns a recording renderer.Program called name.
func (r *Recorder) Program(name string) *Program {
	return &Program{name: name, rec: r}
}

type Program struct {
	name string
	rec  *Recorder
}

var _ renderer.Program = (*Program)(nil)

func (p *Program) Use() {
	p.rec.add(p.name, "Use", "", nil)
}

func (p *Program) SetFloat(name string, value float32) {
	p.rec.add(p.name, "SetFloat", name, value)
}

func (p *Program) SetInt(name string, value int32) {
	p.rec.add(p.name, "SetInt", name, value)
}

func (p *Program) SetVec3(name string, value mgl32.Vec3) {
	p.rec.add(p.name, "SetVec3", name, value)
}

func (p *Program) SetMat4(name string, value mgl32.Mat4) {
	p.rec.add(p.name, "SetMat4", name, value)
}
