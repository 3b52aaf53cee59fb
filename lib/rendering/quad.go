package rendering

import (
	"fmt"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pkuiper/glquad/lib/device"
	"github.com/pkuiper/glquad/lib/metrics"
	"github.com/pkuiper/glquad/lib/resources"
)

const f32 = 4

// Unit quad spanning the full viewport, drawn as two triangles.
var (
	quadPositions = []float32{
		-1, -1,
		1, -1,
		1, 1,
		-1, 1,
	}
	quadColours = []float32{
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	}
	quadUVs = []float32{
		0, 1,
		1, 1,
		1, 0,
		0, 0,
	}
	quadIndices = []uint16{
		0, 1, 2,
		0, 2, 3,
	}
)

// QuadVars owns the GL state for the single textured quad: the linked
// program, one buffer per vertex attribute, the index buffer and the vertex
// array that ties them together.
type QuadVars struct {
	Program *resources.Program

	Position *resources.Buffer
	Colour   *resources.Buffer
	UV       *resources.Buffer
	Index    *resources.Buffer

	Transform mgl32.Mat4

	// GL IDs
	VAO              uint32
	transformUniform int32
	texUniform       int32

	BGColour color.RGBA
}

// NewQuadVars builds the quad's device buffers (construct, bind, upload, in
// attribute-slot order) against an already linked program.
func NewQuadVars(dev device.Device, program *resources.Program, bgColour color.RGBA) (*QuadVars, error) {
	q := &QuadVars{
		Program:   program,
		Transform: mgl32.Ident4(),
		BGColour:  bgColour,
	}

	var err error
	q.Position, err = uploadAttribute(dev, quadPositions)
	if err != nil {
		return nil, fmt.Errorf("position buffer: %w", err)
	}
	q.Colour, err = uploadAttribute(dev, quadColours)
	if err != nil {
		return nil, fmt.Errorf("colour buffer: %w", err)
	}
	q.UV, err = uploadAttribute(dev, quadUVs)
	if err != nil {
		return nil, fmt.Errorf("uv buffer: %w", err)
	}

	q.Index, err = resources.NewBuffer(dev, device.ElementArrayBuffer)
	if err != nil {
		return nil, fmt.Errorf("index buffer: %w", err)
	}
	if err := q.Index.Bind(); err != nil {
		return nil, fmt.Errorf("index buffer: %w", err)
	}
	if err := resources.Upload(q.Index, quadIndices, device.StaticDraw); err != nil {
		return nil, fmt.Errorf("index buffer: %w", err)
	}
	metrics.BufferUpload.Add(float64(q.Index.SizeBytes()))

	return q, nil
}

func uploadAttribute(dev device.Device, data []float32) (*resources.Buffer, error) {
	b, err := resources.NewBuffer(dev, device.ArrayBuffer)
	if err != nil {
		return nil, err
	}
	if err := b.Bind(); err != nil {
		return nil, err
	}
	if err := resources.Upload(b, data, device.StaticDraw); err != nil {
		return nil, err
	}
	metrics.BufferUpload.Add(float64(b.SizeBytes()))
	return b, nil
}

// Start configures the vertex array and uniform locations. Must run once,
// after NewQuadVars, before the first frame.
func (q *QuadVars) Start() error {
	if err := q.Program.Activate(); err != nil {
		return err
	}

	gl.GenVertexArrays(1, &q.VAO)
	gl.BindVertexArray(q.VAO)

	if err := q.bindAttribute(q.Position, "position", 2); err != nil {
		return err
	}
	if err := q.bindAttribute(q.Colour, "colour", 3); err != nil {
		return err
	}
	if err := q.bindAttribute(q.UV, "uv", 2); err != nil {
		return err
	}
	if err := q.Index.Bind(); err != nil {
		return err
	}

	q.transformUniform = gl.GetUniformLocation(q.Program.Handle(), gl.Str("transform\x00"))
	q.texUniform = gl.GetUniformLocation(q.Program.Handle(), gl.Str("tex\x00"))
	gl.Uniform1i(q.texUniform, 0)

	gl.ClearColor(
		float32(q.BGColour.R)/255,
		float32(q.BGColour.G)/255,
		float32(q.BGColour.B)/255,
		float32(q.BGColour.A)/255,
	)

	return q.Program.Deactivate()
}

func (q *QuadVars) bindAttribute(b *resources.Buffer, name string, size int32) error {
	if err := b.Bind(); err != nil {
		return fmt.Errorf("could not bind %s buffer: %w", name, err)
	}
	attrib := uint32(gl.GetAttribLocation(q.Program.Handle(), gl.Str(name+"\x00")))
	gl.EnableVertexAttribArray(attrib)
	gl.VertexAttribPointerWithOffset(attrib, size, gl.FLOAT, false, size*f32, 0)
	return nil
}

// DrawFrame issues the fixed per-frame sequence: activate the program, bind
// each buffer in attribute-slot order, one indexed draw call, deactivate.
func (q *QuadVars) DrawFrame() error {
	if err := q.Program.Activate(); err != nil {
		return err
	}

	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BindVertexArray(q.VAO)

	for _, b := range []*resources.Buffer{q.Position, q.Colour, q.UV, q.Index} {
		if err := b.Bind(); err != nil {
			return err
		}
	}

	gl.UniformMatrix4fv(q.transformUniform, 1, false, &q.Transform[0])
	gl.DrawElements(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_SHORT, nil)
	metrics.FramesDrawn.Inc()

	return q.Program.Deactivate()
}

// Dispose releases the program and every buffer exactly once, in any order.
func (q *QuadVars) Dispose() {
	q.Program.Dispose()
	q.Position.Dispose()
	q.Colour.Dispose()
	q.UV.Dispose()
	q.Index.Dispose()
}
