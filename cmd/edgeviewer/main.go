package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/edgeviewer"
	"github.com/xaionaro-go/edgeviewer/camera"
	"github.com/xaionaro-go/edgeviewer/edge"
	"github.com/xaionaro-go/edgeviewer/frameslot"
	"github.com/xaionaro-go/edgeviewer/logger"
	"github.com/xaionaro-go/edgeviewer/render"
	"github.com/xaionaro-go/edgeviewer/webview"
	"github.com/xaionaro-go/observability"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags]\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	resolution := camera.DefaultResolution
	pflag.Var(&resolution, "resolution", "the resolution of the synthetic camera frames")
	fps := pflag.Float64("fps", 30, "camera frame rate")
	renderFPS := pflag.Float64("render-fps", 60, "render tick rate")
	detectorName := pflag.String("detector", "bild", "edge pipeline: bild, luma, or cv (requires the with_cv build tag)")
	bildCfg := edge.DefaultBildConfig()
	pflag.Float64Var(&bildCfg.BlurRadius, "blur-radius", bildCfg.BlurRadius, "gaussian blur radius of the bild detector")
	pflag.Uint8Var(&bildCfg.Threshold, "threshold", bildCfg.Threshold, "edge threshold of the bild detector")
	maxBufferBytes := pflag.Int("max-buffer-bytes", 0, "refuse frame buffers larger than this; 0 means no limit")
	duration := pflag.Duration("duration", 0, "stop after this long; 0 means run until interrupted")
	httpAddr := pflag.String("http-listen-addr", "", "an address to serve the browser preview on")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	pflag.Parse()
	if len(pflag.Args()) != 0 || *fps <= 0 || *renderFPS <= 0 {
		pflag.Usage()
		os.Exit(1)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()
	if *duration > 0 {
		ctx, cancelFn = context.WithTimeout(ctx, *duration)
		defer cancelFn()
	}
	logger.SetDefault(func() logger.Logger {
		return l
	})
	defer belt.Flush(ctx)

	if *netPprofAddr != "" {
		observability.Go(ctx, func(ctx context.Context) { l.Error(http.ListenAndServe(*netPprofAddr, nil)) })
	}

	detector, err := edge.ByName(*detectorName)
	if err != nil {
		l.Fatal(err)
	}
	if bild, ok := detector.(*edge.Bild); ok {
		bild.BlurRadius.Store(bildCfg.BlurRadius)
		bild.Threshold.Store(uint32(bildCfg.Threshold))
	}

	cfg := edgeviewer.DefaultConfig()
	cfg.Detector = detector
	cfg.Allocator = frameslot.NewHeapAllocator(*maxBufferBytes)
	l.Debugf("config: %s", spew.Sdump(cfg))

	viewer := edgeviewer.New(ctx, cfg)
	viewer.Init(ctx)
	viewer.OnResume(ctx)
	defer viewer.Destroy(ctx)
	defer viewer.OnPause(ctx)

	texture := render.NewTexture()
	renderLoop := render.NewLoop(viewer.Slot(), texture, intervalOf(*renderFPS))
	observability.Go(ctx, func(ctx context.Context) {
		defer cancelFn()
		if err := renderLoop.Serve(ctx); err != nil && ctx.Err() == nil {
			l.Error(err)
		}
	})

	source := camera.NewSynthetic(resolution)
	observability.Go(ctx, func(ctx context.Context) {
		defer cancelFn()
		err := source.Serve(ctx, intervalOf(*fps), func(ctx context.Context, raw []byte, width, height int) {
			viewer.Ingest(ctx, raw, width, height)
		})
		if err != nil && ctx.Err() == nil {
			l.Error(err)
		}
	})

	if *httpAddr != "" {
		handler := webview.NewHandler(viewer.Slot(), viewer, renderLoop.FPS)
		observability.Go(ctx, func(ctx context.Context) {
			if err := webview.ListenAndServe(ctx, *httpAddr, handler); err != nil && ctx.Err() == nil {
				l.Error(err)
				cancelFn()
			}
		})
	}

	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			viewerStatsJSON, err := json.Marshal(viewer.GetStats(ctx))
			if err != nil {
				l.Fatal(err)
			}
			textureStatsJSON, err := json.Marshal(texture.GetStats(ctx))
			if err != nil {
				l.Fatal(err)
			}
			fmt.Printf("viewer:%s -> texture:%s fps:%.1f\n", viewerStatsJSON, textureStatsJSON, renderLoop.FPS.FPS())
		}
	}
}

func intervalOf(fps float64) time.Duration {
	return time.Duration(float64(time.Second) / fps)
}
