package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesDrawn = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glquad_frames_drawn_total",
		Help: "Total number of frames drawn",
	})
	BufferUpload = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glquad_buffer_upload_bytes_total",
		Help: "Total number of bytes uploaded into device buffers",
	})
	TextureUpload = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glquad_texture_upload_bytes_total",
		Help: "Total number of bytes uploaded into textures",
	})
	ShaderBuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glquad_shader_builds_total",
		Help: "Total number of shader programs built and linked",
	})
)

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
