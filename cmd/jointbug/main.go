// Command jointbug reproduces a physics-engine defect: creating a fixed joint
// between two dynamic bodies resets the collision filter data on the shapes of
// the body passed as the joint's second argument. It builds a small scene (ground
// plane, a jointed spacer pair, one loose box), runs for a few seconds, then
// creates the problematic joint and logs the filter words before and after. Set
// use_workaround in config/jointbug.json to see the snapshot/restore fix instead.
package main

import (
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/profile"

	"github.com/Schebb/bug-mcjointcoll/internal/config"
	"github.com/Schebb/bug-mcjointcoll/internal/debug"
	"github.com/Schebb/bug-mcjointcoll/internal/entity"
	"github.com/Schebb/bug-mcjointcoll/internal/graphics"
	"github.com/Schebb/bug-mcjointcoll/internal/logger"
	"github.com/Schebb/bug-mcjointcoll/internal/session"
)

const simStep = 1.0 / 60.0

var (
	groundColor = rl.NewColor(51, 51, 255, 255)
	boxColor    = rl.NewColor(51, 255, 51, 255)
	linkColor   = rl.NewColor(255, 51, 51, 255)
)

func main() {
	os.Exit(run())
}

func run() int {
	log := logger.New()
	cfg, _ := config.Load()

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	gfx := graphics.New()
	gfx.GridVisible = cfg.GridVisible
	if err := gfx.Init(cfg.Width, cfg.Height); err != nil {
		log.Log("startup: " + err.Error())
		return 1
	}

	phys := session.New(log)
	if err := phys.Init(); err != nil {
		// An already-initialized session means there is nothing to do.
		log.Log("startup: " + err.Error())
		gfx.Deinit()
		return 0
	}

	dbg := debug.New()
	dbg.ShowFPS = cfg.ShowFPS
	dbg.ShowMemAlloc = cfg.ShowMemAlloc
	gfx.SetOverlay(dbg)

	world := entity.NewWorld(phys)
	ground := world.AddGround(mgl64.Vec3{90, 0.5, 90}, mgl64.Vec3{})

	// c keeps b standing above the ground so that no ground collision interferes
	// with a once a is fixed to b.
	c := world.AddBox(1000, mgl64.Vec3{8, 0.25, 1.5}, mgl64.Vec3{0, 2, 0})
	b := world.AddBox(1000, mgl64.Vec3{8, 0.25, 1.5}, mgl64.Vec3{0, 4, 0})
	world.AddFixedJoint(c, mgl64.Vec3{0, 1, 0}, b, mgl64.Vec3{0, -1, 0}, false)

	a := world.AddBox(50, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 5, 0})

	start := time.Now()
	jointCreated := false
	for !gfx.ShouldQuit() {
		if !jointCreated && time.Since(start).Seconds() > cfg.TriggerSeconds {
			entity.LogFilterData(log, "a before joint", a)
			entity.LogFilterData(log, "b before joint", b)
			world.AddFixedJoint(a, mgl64.Vec3{}, b, mgl64.Vec3{}, cfg.UseWorkaround)
			entity.LogFilterData(log, "a after joint", a)
			entity.LogFilterData(log, "b after joint", b)
			jointCreated = true
		}

		phys.Scene.Simulate(simStep)
		phys.Scene.FetchResults(true)
		world.SyncTransforms()

		gfx.Clear()
		gfx.DrawBox(ground.ModelMatrix(), groundColor)
		gfx.DrawBox(a.ModelMatrix(), boxColor)
		gfx.DrawBox(b.ModelMatrix(), linkColor)
		gfx.DrawBox(c.ModelMatrix(), linkColor)
		gfx.Refresh()

		time.Sleep(time.Millisecond)
	}

	gfx.Deinit()
	phys.Deinit()
	return 0
}
