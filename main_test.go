package main

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

type fakePump struct {
	polls int
	waits []float64
}

func (f *fakePump) PollEvents() { f.polls++ }

func (f *fakePump) WaitEventsTimeout(timeout float64) { f.waits = append(f.waits, timeout) }

func TestPumpEvents(t *testing.T) {
	p := &fakePump{}
	pumpEvents(p, true)
	assert.Equal(t, 1, p.polls)
	assert.Empty(t, p.waits)

	pumpEvents(p, false)
	assert.Equal(t, 1, p.polls)
	assert.Equal(t, []float64{idleTimeout}, p.waits)
}

func TestShaderStage(t *testing.T) {
	assert.Equal(t, "vertex", shaderStage(gl.VERTEX_SHADER))
	assert.Equal(t, "fragment", shaderStage(gl.FRAGMENT_SHADER))
	assert.Equal(t, "0x8dd9", shaderStage(gl.GEOMETRY_SHADER))
}

func TestLetterbox(t *testing.T) {
	tests := []struct {
		name         string
		texW, texH   int
		fbW, fbH     int
		wantX, wantY float32
	}{
		{"same size", 800, 600, 800, 600, 1, 1},
		{"hidpi", 800, 600, 1600, 1200, 1, 1},
		{"framebuffer wider", 400, 400, 800, 400, 0.5, 1},
		{"framebuffer taller", 400, 400, 400, 800, 1, 0.5},
		{"no frame yet", 0, 0, 800, 600, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := letterbox(tt.texW, tt.texH, tt.fbW, tt.fbH)
			assert.InDelta(t, tt.wantX, m.At(0, 0), 1e-6)
			assert.InDelta(t, tt.wantY, m.At(1, 1), 1e-6)
			corner := m.Mul4x1(mgl32.Vec4{1, 1, 0, 1})
			assert.InDelta(t, tt.wantX, corner.X(), 1e-6)
			assert.InDelta(t, tt.wantY, corner.Y(), 1e-6)
		})
	}
}
