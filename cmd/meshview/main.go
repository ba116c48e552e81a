// Package main is the entry point for the meshview 3D viewer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/meshforge/meshview/internal/config"
	"github.com/meshforge/meshview/internal/logger"
	"github.com/meshforge/meshview/internal/mesh"
	"github.com/meshforge/meshview/internal/rpc"
	"github.com/meshforge/meshview/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var initial *mesh.Mesh
	initialPath := ""
	if flag.NArg() > 0 {
		initialPath = flag.Arg(0)
		initial, err = mesh.Load(initialPath, config.MeshName())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if config.StatsOnly() {
		if initial == nil {
			fmt.Fprintln(os.Stderr, "Error: -stats requires a mesh file argument")
			os.Exit(1)
		}
		printStats(initialPath, initial)
		return
	}

	state := viewer.NewState()
	if initial != nil {
		state = viewer.StateForMesh(initial.MaxDimension())
	}
	state.SetWireframe(cfg.Viewer.Wireframe)
	state.SetBackfaces(cfg.Viewer.Backfaces)
	state.SetUI(cfg.Viewer.ShowUI)

	queue := viewer.NewQueue()

	rpcAddr := ""
	if cfg.RPC.Enabled {
		server := rpc.NewServer(state, queue, cfg.RPC.Capture)
		rpcAddr, err = server.Start(cfg.RPC.Port)
		if err != nil {
			logger.Error("failed to start rpc server", zap.Error(err))
			os.Exit(1)
		}
		defer server.Close()
	}

	title := "meshview"
	if initialPath != "" {
		title = "meshview - " + filepath.Base(initialPath)
	}

	v := viewer.New(viewer.Options{
		Title:   title,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		VSync:   cfg.Window.VSync,
		RPCAddr: rpcAddr,
	}, state, queue)

	if err := v.Run(initial, initialPath); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func printStats(path string, m *mesh.Mesh) {
	stats := m.Analyze()
	min, max := m.Bounds()

	fmt.Printf("Mesh statistics for %s\n", path)
	fmt.Printf("Vertices:  %d\n", stats.VertexCount)
	fmt.Printf("Edges:     %d\n", stats.EdgeCount)
	fmt.Printf("Faces:     %d\n", stats.FaceCount)
	fmt.Printf("Manifold:  %v\n", stats.IsManifold)
	fmt.Printf("Holes:     %d\n", stats.HoleCount)
	fmt.Printf("Bounds:    min (%g, %g, %g)  max (%g, %g, %g)\n",
		min[0], min[1], min[2], max[0], max[1], max[2])
}
