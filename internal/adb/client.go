// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package adb

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
)

// Broadcast defaults understood by the engine's intent receiver.
const (
	DefaultBroadcastAction = "android.intent.action.RUN"
	DefaultExtraKey        = "cmd"
)

var (
	// ErrADBNotFound means the adb binary is not on PATH (or the configured
	// path is wrong).
	ErrADBNotFound = errors.New("adb binary not found")

	// ErrNoDevices means adb is reachable but no usable device is attached.
	ErrNoDevices = errors.New("no adb devices connected")
)

// =============================================================================
// TYPES
// =============================================================================

// Device is one row of `adb devices -l`.
type Device struct {
	Serial  string
	State   string // device / offline / unauthorized
	Product string
	Model   string
}

// Usable reports whether the device can accept commands.
func (d Device) Usable() bool {
	return d.State == "device"
}

// Label returns a human-readable device name for status display.
func (d Device) Label() string {
	if d.Model != "" {
		return d.Model + " (" + d.Serial + ")"
	}
	return d.Serial
}

// SendResult records the outcome of one console command delivery.
type SendResult struct {
	ID       string
	Command  string
	Serial   string
	Output   string
	OK       bool
	SentAt   time.Time
	Duration time.Duration
}

// Sender delivers a finalized console command string to a device. The UI and
// CLI depend on this interface; *Client is the real implementation.
type Sender interface {
	Send(ctx context.Context, serial, command string) (*SendResult, error)
}

// =============================================================================
// CLIENT
// =============================================================================

// Client wraps the external adb binary.
type Client struct {
	Path     string        // adb binary, default "adb"
	Action   string        // broadcast intent action
	ExtraKey string        // broadcast extra key carrying the command
	Timeout  time.Duration // per-invocation timeout, 0 = caller's context only
}

// NewClient creates a client with the given binary path ("" means "adb" on
// PATH) and the engine's default broadcast parameters.
func NewClient(path string, timeout time.Duration) *Client {
	if path == "" {
		path = "adb"
	}
	return &Client{
		Path:     path,
		Action:   DefaultBroadcastAction,
		ExtraKey: DefaultExtraKey,
		Timeout:  timeout,
	}
}

// run executes adb with the given arguments and returns combined output.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Path, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", c.Path, ErrADBNotFound)
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("adb %s: %w", args[0], ctx.Err())
		}
		return string(out), fmt.Errorf("adb %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// Devices lists attached devices via `adb devices -l`.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	out, err := c.run(ctx, "devices", "-l")
	if err != nil {
		return nil, err
	}
	return parseDevices(out), nil
}

// DefaultDevice returns the first usable device, or ErrNoDevices.
func (c *Client) DefaultDevice(ctx context.Context) (Device, error) {
	devices, err := c.Devices(ctx)
	if err != nil {
		return Device{}, err
	}
	for _, d := range devices {
		if d.Usable() {
			return d, nil
		}
	}
	return Device{}, ErrNoDevices
}

// Shell runs a shell command on the device. An empty serial targets the only
// attached device (adb's default).
func (c *Client) Shell(ctx context.Context, serial, command string) (string, error) {
	args := make([]string, 0, 4)
	if serial != "" {
		args = append(args, "-s", serial)
	}
	args = append(args, "shell", command)

	out, err := c.run(ctx, args...)
	return strings.TrimSpace(out), err
}

// Send broadcasts a console command to the game via the intent receiver.
// A result is returned even on failure so the attempt can be recorded.
func (c *Client) Send(ctx context.Context, serial, command string) (*SendResult, error) {
	result := &SendResult{
		ID:      uuid.New().String(),
		Command: command,
		Serial:  serial,
		SentAt:  time.Now(),
	}

	out, err := c.Shell(ctx, serial, c.broadcastCommand(command))
	result.Output = out
	result.Duration = time.Since(result.SentAt)
	result.OK = err == nil

	if err != nil {
		return result, fmt.Errorf("send %q: %w", command, err)
	}
	return result, nil
}

// broadcastCommand builds the device-side shell command delivering the
// console command. Quoting targets the device's sh, not the host shell.
func (c *Client) broadcastCommand(command string) string {
	return shellquote.Join("am", "broadcast", "-a", c.Action, "-e", c.ExtraKey, command)
}

// Ping checks that adb is reachable and reports the usable device count.
func (c *Client) Ping(ctx context.Context) (int, error) {
	devices, err := c.Devices(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, d := range devices {
		if d.Usable() {
			n++
		}
	}
	return n, nil
}

// =============================================================================
// OUTPUT PARSING
// =============================================================================

// parseDevices parses `adb devices -l` output:
//
//	List of devices attached
//	emulator-5554   device product:sdk_gphone64 model:Pixel_6 device:emu64xa transport_id:1
//	0123456789AB    unauthorized usb:1-1
func parseDevices(out string) []Device {
	var devices []Device

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		d := Device{Serial: fields[0], State: fields[1]}
		for _, f := range fields[2:] {
			if v, ok := strings.CutPrefix(f, "product:"); ok {
				d.Product = v
			} else if v, ok := strings.CutPrefix(f, "model:"); ok {
				d.Model = v
			}
		}
		devices = append(devices, d)
	}

	return devices
}
