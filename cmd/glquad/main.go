package main

import (
	"flag"
	stdlog "log"
	"log/slog"
	"runtime"
	"time"

	"github.com/pkuiper/glquad/lib/api"
	"github.com/pkuiper/glquad/lib/assets"
	"github.com/pkuiper/glquad/lib/config"
	"github.com/pkuiper/glquad/lib/device/gldevice"
	"github.com/pkuiper/glquad/lib/input"
	"github.com/pkuiper/glquad/lib/log"
	"github.com/pkuiper/glquad/lib/rendering"
	"github.com/pkuiper/glquad/lib/rendering/shaders"
	"github.com/pkuiper/glquad/lib/stats"
	"github.com/pkuiper/glquad/lib/utils"
	"github.com/pkuiper/glquad/lib/window"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	configPtr := flag.String("config", "", "Path to a config file")
	flag.Parse()

	log.Setup()

	cfg := &config.Config{}
	if *configPtr != "" {
		var err error
		cfg, err = config.Parse(*configPtr)
		if err != nil {
			stdlog.Fatalf("could not parse config: %s", err)
		}
	} else if err := cfg.Validate(); err != nil {
		stdlog.Fatalf("could not build default config: %s", err)
	}

	win, err := window.New(cfg.Window)
	if err != nil {
		stdlog.Fatalf("could not create window: %s", err)
	}

	err = rendering.Init()
	if err != nil {
		stdlog.Fatalf("could not initialise renderer: %s", err)
	}
	win.LogContextInfo()
	input.SetupShortcutKeys(win)

	dev := gldevice.New()

	program, err := shaders.BuildQuadProgram(dev, &shaders.ShaderData{
		FallbackColour: utils.ColourParse(cfg.FallbackColour),
		UseTexture:     true,
	})
	if err != nil {
		stdlog.Fatalf("could not init GL program: %s", err)
	}

	quad, err := rendering.NewQuadVars(dev, program, utils.ColourParse(cfg.ClearColour))
	if err != nil {
		stdlog.Fatalf("could not upload quad geometry: %s", err)
	}
	if err := quad.Start(); err != nil {
		stdlog.Fatalf("could not configure quad state: %s", err)
	}

	tex, err := assets.Load(cfg.Texture)
	if err != nil {
		stdlog.Fatalf("could not load texture: %s", err)
	}
	texID := rendering.SetupRGBATexture(tex.Width, tex.Height)
	rendering.SendTextureToGPU(texID, tex.Width, tex.Height, tex.Pix)

	st := stats.New()
	api.ServeInBackground(cfg.Api, st, win.RequestShutdown)

	var deltaTimer utils.DeltaTimer
	for !win.ShouldClose() {
		dt := deltaTimer.Next()
		if dt > 50*time.Millisecond {
			slog.Warn("slow frame", slog.Duration("frame_time", dt), slog.String("module", "main"))
		}

		if err := quad.DrawFrame(); err != nil {
			stdlog.Fatalf("could not draw frame: %s", err)
		}
		st.Update()

		win.Swap()
		input.Poll()
	}

	// dispose everything exactly once, then release the context
	quad.Dispose()
	rendering.DeleteTexture(texID)
	win.Destroy()
}
