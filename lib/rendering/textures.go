package rendering

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pkuiper/glquad/lib/metrics"
)

var TextureUploadCounter uint64

// SetupRGBATexture allocates an empty RGBA texture of the given size and
// returns its ID.
func SetupRGBATexture(width int, height int) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	borderColor := mgl32.Vec4{0, 0, 0, 0}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)

	buf := make([]uint8, width*height*4)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(width),
		int32(height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(&buf[0]),
	)
	return id
}

// SendTextureToGPU pushes decoded RGBA pixels into an existing texture.
func SendTextureToGPU(texID uint32, w int, h int, data []byte) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexSubImage2D(
		gl.TEXTURE_2D,
		0, 0, 0,
		int32(w), int32(h),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(data),
	)
	TextureUploadCounter += uint64(len(data))
	metrics.TextureUpload.Add(float64(len(data)))
}

// DeleteTexture releases a texture ID.
func DeleteTexture(texID uint32) {
	gl.DeleteTextures(1, &texID)
}
