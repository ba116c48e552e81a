package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is a JSON-RPC client for a running viewer, one typed method per
// RPC method.
type Client struct {
	url  string
	http *http.Client
}

// NewClient targets addr ("host:port" or a full http URL).
func NewClient(addr string) *Client {
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return &Client{
		url: addr,
		http: &http.Client{
			// screenshot/capture handlers may hold the request up to
			// captureWait before answering
			Timeout: captureWait + 10*time.Second,
		},
	}
}

type clientResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

// Call performs one JSON-RPC request and unmarshals the result into out
// (which may be nil).
func (c *Client) Call(method string, params any, out any) error {
	rawParams, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshaling params: %w", err)
	}

	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      json.RawMessage("1"),
		Method:  method,
		Params:  rawParams,
	})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	httpResp, err := c.http.Post(c.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("calling %s: %w", method, err)
	}
	defer httpResp.Body.Close()

	var resp clientResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return fmt.Errorf("decoding %s response: %w", method, err)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if out != nil {
		if err := json.Unmarshal(resp.Result, out); err != nil {
			return fmt.Errorf("decoding %s result: %w", method, err)
		}
	}
	return nil
}

func (c *Client) callString(method string, params any) (string, error) {
	var result string
	if err := c.Call(method, params, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (c *Client) LoadModel(path, meshName string) (string, error) {
	params := []any{path}
	if meshName != "" {
		params = append(params, meshName)
	}
	return c.callString("load_model", params)
}

func (c *Client) SetRotation(x, y, z float32) (string, error) {
	return c.callString("set_rotation", []any{x, y, z})
}

func (c *Client) RotateAroundAxis(axis [3]float32, angle string) (string, error) {
	return c.callString("rotate_around_axis", []any{axis, angle})
}

func (c *Client) SetCameraPosition(x, y, z float32) (string, error) {
	return c.callString("set_camera_position", []any{x, y, z})
}

func (c *Client) SetCameraTarget(x, y, z float32) (string, error) {
	return c.callString("set_camera_target", []any{x, y, z})
}

func (c *Client) EnableWireframe() (string, error) { return c.callString("enable_wireframe", []any{}) }
func (c *Client) DisableWireframe() (string, error) { return c.callString("disable_wireframe", []any{}) }
func (c *Client) ToggleWireframe() (string, error) { return c.callString("toggle_wireframe", []any{}) }

func (c *Client) EnableBackfaces() (string, error) { return c.callString("enable_backfaces", []any{}) }
func (c *Client) DisableBackfaces() (string, error) { return c.callString("disable_backfaces", []any{}) }
func (c *Client) ToggleBackfaces() (string, error) { return c.callString("toggle_backfaces", []any{}) }

func (c *Client) EnableUI() (string, error) { return c.callString("enable_ui", []any{}) }
func (c *Client) DisableUI() (string, error) { return c.callString("disable_ui", []any{}) }
func (c *Client) ToggleUI() (string, error) { return c.callString("toggle_ui", []any{}) }

func (c *Client) GetStats() (StatsResponse, error) {
	var stats StatsResponse
	err := c.Call("get_stats", []any{}, &stats)
	return stats, err
}

func (c *Client) CaptureFrame(path string) (string, error) {
	params := []any{}
	if path != "" {
		params = append(params, path)
	}
	return c.callString("capture_frame", params)
}

func (c *Client) Screenshot(path string) (string, error) {
	return c.callString("screenshot", []any{path})
}

func (c *Client) Quit() (string, error) {
	return c.callString("quit", []any{})
}
