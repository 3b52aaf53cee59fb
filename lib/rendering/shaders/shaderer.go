package shaders

import (
	"bytes"
	"embed"
	"fmt"
	"image/color"
	"text/template"

	"github.com/pkuiper/glquad/lib/device"
	"github.com/pkuiper/glquad/lib/metrics"
	"github.com/pkuiper/glquad/lib/resources"
)

//go:embed *.frag *.vert
var templateDir embed.FS

type Shaderer struct {
	templates *template.Template
}

func NewShaderer() (*Shaderer, error) {
	s := &Shaderer{}

	var err error

	s.templates, err = template.New("shaders").Funcs(template.FuncMap{
		"glfloat": func(channel uint8) string {
			return fmt.Sprintf("%.6f", float32(channel)/255)
		},
	}).ParseFS(templateDir, "*.frag", "*.vert")

	return s, err
}

// ShaderData contains stuff that gets substituted into the shader templates
type ShaderData struct {
	FallbackColour color.RGBA
	UseTexture     bool
}

func (s *Shaderer) GetShaderSource(name string, data *ShaderData) (string, error) {
	var b bytes.Buffer
	err := s.templates.ExecuteTemplate(&b, name, data)
	if err != nil {
		return "", fmt.Errorf("error while rendering template: %s", err)
	}

	return b.String(), nil
}

func (s *Shaderer) TemplateNames() []string {
	var names []string
	for _, t := range s.templates.Templates() {
		names = append(names, t.Name())
	}
	return names
}

// BuildQuadProgram expands the quad's vertex and fragment templates and
// links them into a program via the standard construction path.
func BuildQuadProgram(dev device.Device, shaderData *ShaderData) (*resources.Program, error) {
	shaderer, err := NewShaderer()
	if err != nil {
		return nil, fmt.Errorf("could not get shaders: %w", err)
	}

	vertexShader, err := shaderer.GetShaderSource("quad.vert", shaderData)
	if err != nil {
		return nil, fmt.Errorf("could not get vertex shader: %w", err)
	}

	fragmentShader, err := shaderer.GetShaderSource("quad.frag", shaderData)
	if err != nil {
		return nil, fmt.Errorf("could not get fragment shader: %w", err)
	}

	program, err := resources.NewProgramFromSources(dev, vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("could not init shader: %w", err)
	}
	metrics.ShaderBuilds.Inc()

	return program, nil
}
