package main

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	vertexShaderSource = `
		#version 410
		in vec2 vp;
		uniform mat4 mvp;
		out vec2 uv;
		void main() {
			// image rows run top to bottom
			uv = vec2((vp.x + 1.0) * 0.5, (1.0 - vp.y) * 0.5);
			gl_Position = mvp * vec4(vp, 0.0, 1.0);
		}
	` + "\x00"

	fragmentShaderSource = `
		#version 410
		in vec2 uv;
		uniform sampler2D frame;
		out vec4 frag_colour;
		void main() {
			frag_colour = texture(frame, uv);
		}
	` + "\x00"
)

// quadVertices is a full-screen triangle strip.
var quadVertices = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

// presenter blits the software canvas to the window as a texture.
type presenter struct {
	program uint32
	mvpLoc  int32
	vao     uint32
	vbo     uint32
	texture uint32
	texW    int
	texH    int
}

func newPresenter() (*presenter, error) {
	program, err := newProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, err
	}
	p := &presenter{program: program}
	gl.UseProgram(program)

	p.mvpLoc = gl.GetUniformLocation(program, gl.Str("mvp\x00"))
	gl.Uniform1i(gl.GetUniformLocation(program, gl.Str("frame\x00")), 0)

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(program, gl.Str("vp\x00")))
	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.GenTextures(1, &p.texture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.ClearColor(1, 1, 1, 1)
	return p, nil
}

// upload copies img into the texture, reallocating it when the size changes.
func (p *presenter) upload(img *image.RGBA) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	if w != p.texW || h != p.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		p.texW, p.texH = w, h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
}

// letterbox scales the unit quad so a texW x texH frame keeps its aspect
// ratio inside a fbW x fbH framebuffer; the two disagree while a window
// resize is still in flight.
func letterbox(texW, texH, fbW, fbH int) mgl32.Mat4 {
	if texW <= 0 || texH <= 0 || fbW <= 0 || fbH <= 0 {
		return mgl32.Ident4()
	}
	tex := float32(texW) / float32(texH)
	fb := float32(fbW) / float32(fbH)
	if tex > fb {
		return mgl32.Scale3D(1, fb/tex, 1)
	}
	return mgl32.Scale3D(tex/fb, 1, 1)
}

// draw paints the last uploaded frame, letterboxed, into the viewport.
func (p *presenter) draw(fbWidth, fbHeight int) {
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(p.program)
	mvp := letterbox(p.texW, p.texH, fbWidth, fbHeight)
	gl.UniformMatrix4fv(p.mvpLoc, 1, false, &mvp[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, int32(len(quadVertices)/2))
}

func (p *presenter) release() {
	gl.DeleteTextures(1, &p.texture)
	gl.DeleteBuffers(1, &p.vbo)
	gl.DeleteVertexArrays(1, &p.vao)
	gl.DeleteProgram(p.program)
}

// shaderStage names a shader type for error messages.
func shaderStage(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return fmt.Sprintf("0x%x", shaderType)
	}
}

// infoLog reads a GL info log of n bytes through read and trims the
// trailing NUL.
func infoLog(n int32, read func(length int32, buf *uint8)) string {
	buf := strings.Repeat("\x00", int(n+1))
	read(n, gl.Str(buf))
	return strings.TrimRight(buf, "\x00\n")
}

// newProgram links the presenter's vertex and fragment stages.
func newProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
		msg := infoLog(n, func(length int32, buf *uint8) { gl.GetProgramInfoLog(program, length, nil, buf) })
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link presenter program: %s", msg)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
		msg := infoLog(n, func(length int32, buf *uint8) { gl.GetShaderInfoLog(shader, length, nil, buf) })
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile %s shader: %s", shaderStage(shaderType), msg)
	}
	return shader, nil
}
