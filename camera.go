package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitboxer/common"
)

const (
	minZoom    = 0.25
	maxZoom    = 16.0
	zoomStep   = 1.1
	zoomSmooth = 0.25
)

// camera maps frame pixels to the canvas. The canvas starts at originX so
// the side panel never covers frame pixel 0.
type camera struct {
	zoom       float64
	targetZoom float64
	panX, panY float64
	originX    float64

	// screen point and the world point under it when the wheel last moved
	anchorX, anchorY float64
	anchorWorld      cp.Vector

	panning            bool
	lastPanX, lastPanY int
}

func newCamera(originX, zoom float64) *camera {
	zoom = common.Clamp(zoom, minZoom, maxZoom)
	return &camera{zoom: zoom, targetZoom: zoom, originX: originX}
}

// toWorld converts a screen position to frame-local pixel coordinates.
func (c *camera) toWorld(sx, sy float64) cp.Vector {
	return cp.Vector{
		X: (sx - c.originX - c.panX) / c.zoom,
		Y: (sy - c.panY) / c.zoom,
	}
}

func (c *camera) toScreen(p cp.Vector) (float64, float64) {
	return p.X*c.zoom + c.panX + c.originX, p.Y*c.zoom + c.panY
}

// zoomAt starts a zoom toward the wheel direction, keeping the point under
// (sx, sy) fixed.
func (c *camera) zoomAt(wheel, sx, sy float64) {
	if wheel == 0 {
		return
	}
	if wheel > 0 {
		c.targetZoom *= zoomStep
	} else {
		c.targetZoom /= zoomStep
	}
	c.targetZoom = common.Clamp(c.targetZoom, minZoom, maxZoom)
	c.anchorX, c.anchorY = sx, sy
	c.anchorWorld = c.toWorld(sx, sy)
}

// update moves the zoom one step toward its target.
func (c *camera) update() {
	if c.zoom == c.targetZoom {
		return
	}
	c.zoom = common.Lerp(c.zoom, c.targetZoom, zoomSmooth)
	if math.Abs(c.zoom-c.targetZoom) < 0.001 {
		c.zoom = c.targetZoom
	}
	c.panX = c.anchorX - c.originX - c.anchorWorld.X*c.zoom
	c.panY = c.anchorY - c.anchorWorld.Y*c.zoom
}

func (c *camera) beginPan(x, y int) {
	c.panning = true
	c.lastPanX, c.lastPanY = x, y
}

func (c *camera) dragPan(x, y int) {
	if !c.panning {
		return
	}
	c.panX += float64(x - c.lastPanX)
	c.panY += float64(y - c.lastPanY)
	c.lastPanX, c.lastPanY = x, y
}

func (c *camera) endPan() { c.panning = false }

// center places a w x h frame in the middle of a canvas of the given size.
func (c *camera) center(w, h, canvasW, canvasH float64) {
	c.panX = (canvasW - w*c.zoom) / 2
	c.panY = (canvasH - h*c.zoom) / 2
}

// geoM positions frame pixels on screen.
func (c *camera) geoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(c.zoom, c.zoom)
	m.Translate(c.panX+c.originX, c.panY)
	return m
}
