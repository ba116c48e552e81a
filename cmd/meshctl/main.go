// meshctl is a command-line remote control for a running meshview
// instance. Every RPC method maps to one subcommand.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/meshforge/meshview/internal/rpc"
)

func main() {
	addr := flag.String("addr", fmt.Sprintf("127.0.0.1:%d", rpc.DefaultPort), "Viewer RPC address")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	client := rpc.NewClient(*addr)
	out, err := run(client, args[0], args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if out != "" {
		fmt.Println(out)
	}
}

func run(client *rpc.Client, command string, args []string) (string, error) {
	switch command {
	case "load_model":
		if len(args) < 1 || len(args) > 2 {
			return "", usageError("load_model <file> [mesh-name]")
		}
		path, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("resolving path: %w", err)
		}
		meshName := ""
		if len(args) == 2 {
			meshName = args[1]
		}
		return client.LoadModel(path, meshName)

	case "set_rotation":
		v, err := parseFloats(args, 3, "set_rotation <x> <y> <z>")
		if err != nil {
			return "", err
		}
		return client.SetRotation(v[0], v[1], v[2])

	case "rotate_around_axis":
		if len(args) != 4 {
			return "", usageError("rotate_around_axis <x> <y> <z> <angle>")
		}
		v, err := parseFloats(args[:3], 3, "rotate_around_axis <x> <y> <z> <angle>")
		if err != nil {
			return "", err
		}
		return client.RotateAroundAxis([3]float32{v[0], v[1], v[2]}, args[3])

	case "set_camera_position":
		v, err := parseFloats(args, 3, "set_camera_position <x> <y> <z>")
		if err != nil {
			return "", err
		}
		return client.SetCameraPosition(v[0], v[1], v[2])

	case "set_camera_target":
		v, err := parseFloats(args, 3, "set_camera_target <x> <y> <z>")
		if err != nil {
			return "", err
		}
		return client.SetCameraTarget(v[0], v[1], v[2])

	case "enable_wireframe":
		return client.EnableWireframe()
	case "disable_wireframe":
		return client.DisableWireframe()
	case "toggle_wireframe":
		return client.ToggleWireframe()

	case "enable_backfaces":
		return client.EnableBackfaces()
	case "disable_backfaces":
		return client.DisableBackfaces()
	case "toggle_backfaces":
		return client.ToggleBackfaces()

	case "enable_ui":
		return client.EnableUI()
	case "disable_ui":
		return client.DisableUI()
	case "toggle_ui":
		return client.ToggleUI()

	case "get_stats":
		stats, err := client.GetStats()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("vertices: %d\nedges: %d\nfaces: %d\nmanifold: %v\nholes: %d",
			stats.Vertices, stats.Edges, stats.Faces, stats.IsManifold, stats.Holes), nil

	case "capture_frame":
		if len(args) > 1 {
			return "", usageError("capture_frame [file]")
		}
		path := ""
		if len(args) == 1 {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return "", fmt.Errorf("resolving path: %w", err)
			}
			path = abs
		}
		return client.CaptureFrame(path)

	case "screenshot":
		if len(args) != 1 {
			return "", usageError("screenshot <file>")
		}
		// resolve locally so the viewer's working directory is irrelevant
		path, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("resolving path: %w", err)
		}
		return client.Screenshot(path)

	case "quit":
		return client.Quit()

	case "help", "-h", "--help":
		printUsage()
		return "", nil

	default:
		return "", fmt.Errorf("unknown command: %s (run 'meshctl help')", command)
	}
}

func parseFloats(args []string, n int, usage string) ([]float32, error) {
	if len(args) != n {
		return nil, usageError(usage)
	}
	out := make([]float32, n)
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func usageError(usage string) error {
	return fmt.Errorf("usage: meshctl %s", usage)
}

func printUsage() {
	fmt.Println(`meshctl - remote control for a running meshview

Usage:
  meshctl [-addr host:port] <command> [args]

Commands:
  load_model <file> [mesh-name]          Load a mesh file into the viewer
  set_rotation <x> <y> <z>               Set absolute model rotation (radians)
  rotate_around_axis <x> <y> <z> <angle> Rotate around an axis ("90d" or "1.57r")
  set_camera_position <x> <y> <z>        Place the camera eye
  set_camera_target <x> <y> <z>          Aim the camera
  enable_wireframe | disable_wireframe | toggle_wireframe
  enable_backfaces | disable_backfaces | toggle_backfaces
  enable_ui | disable_ui | toggle_ui
  get_stats                              Print mesh statistics
  capture_frame [file]                   Capture a frame (if enabled)
  screenshot <file>                      Save a PNG screenshot
  quit                                   Close the viewer

Examples:
  meshctl load_model model.glb hull
  meshctl rotate_around_axis 0 1 0 90d
  meshctl screenshot shot.png`)
}
