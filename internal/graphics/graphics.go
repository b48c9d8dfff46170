package graphics

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	targetFPS = 60

	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
)

// Overlay is drawn in 2D after the 3D scene each frame (e.g. the debug HUD).
type Overlay interface {
	Draw()
}

// Graphics owns the window, the 3D camera, and the cube mesh every box is drawn
// with. One frame is: Clear, any number of DrawBox calls, Refresh.
type Graphics struct {
	camera      rl.Camera3D
	cubeMesh    rl.Mesh
	cubeMtl     rl.Material
	cubeLoaded  bool
	overlay     Overlay
	GridVisible bool
}

// New returns an uninitialized graphics layer. Call Init before any drawing.
func New() *Graphics {
	return &Graphics{GridVisible: true}
}

// Init opens the window and sets up a perspective camera at (10,10,10) looking at
// the origin. Returns an error when the window could not be created; callers treat
// that as fatal.
func (g *Graphics) Init(width, height int32) error {
	rl.InitWindow(width, height, "joint collision-filter repro")
	if !rl.IsWindowReady() {
		return errors.New("graphics: window creation failed")
	}
	rl.SetTargetFPS(targetFPS)

	g.camera.Position = rl.NewVector3(10, 10, 10)
	g.camera.Target = rl.NewVector3(0, 0, 0)
	g.camera.Up = rl.NewVector3(0, 1, 0)
	g.camera.Fovy = 45
	g.camera.Projection = rl.CameraPerspective
	return nil
}

// SetOverlay sets the 2D overlay drawn during Refresh.
func (g *Graphics) SetOverlay(o Overlay) {
	g.overlay = o
}

// ShouldQuit reports whether the user asked to quit: window close button or the
// escape key (raylib's default exit key).
func (g *Graphics) ShouldQuit() bool {
	return rl.WindowShouldClose()
}

// Clear begins the frame, clears to black, and enters 3D mode. The editor grid is
// drawn here so boxes land on top of it.
func (g *Graphics) Clear() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.BeginMode3D(g.camera)
	if g.GridVisible {
		drawEditorGrid()
	}
}

// DrawBox draws a unit cube under the given model transform and color. The mesh
// and material are created on first use so GPU resources exist only after Init.
func (g *Graphics) DrawBox(model mgl32.Mat4, color rl.Color) {
	g.ensureCube()
	if albedo := g.cubeMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	rl.DrawMesh(g.cubeMesh, g.cubeMtl, toRLMatrix(model))
}

// Refresh leaves 3D mode, draws the overlay, and presents the frame.
func (g *Graphics) Refresh() {
	rl.EndMode3D()
	if g.overlay != nil {
		g.overlay.Draw()
	}
	rl.EndDrawing()
}

// Deinit unloads GPU resources and closes the window.
func (g *Graphics) Deinit() {
	if g.cubeLoaded {
		rl.UnloadMesh(&g.cubeMesh)
		g.cubeLoaded = false
	}
	rl.CloseWindow()
}

func (g *Graphics) ensureCube() {
	if g.cubeLoaded {
		return
	}
	g.cubeMesh = rl.GenMeshCube(1, 1, 1)
	g.cubeMtl = rl.LoadMaterialDefault()
	g.cubeLoaded = true
}

// toRLMatrix converts a column-major mgl32 matrix to raylib's layout; both index
// element (row, col) as col*4+row, so this is a field-by-field copy.
func toRLMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}
}
