package android

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/spance/adbpanel-go/devicectl/definitions"

	"github.com/rs/zerolog/log"
)

const defaultTimeout = 10 * time.Second

type ADBDevice struct {
	path    string
	timeout time.Duration
}

func NewADBDevice(path string, timeout time.Duration) *ADBDevice {
	if path == "" {
		path = "adb"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ADBDevice{path: path, timeout: timeout}
}

// run executes one adb invocation bounded by the configured timeout.
// A non-empty serial is passed through -s.
func (r *ADBDevice) run(ctx context.Context, serial string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var cmdArgs []string
	if serial != "" {
		cmdArgs = append(cmdArgs, "-s", serial)
	}
	cmdArgs = append(cmdArgs, args...)

	log.Debug().Str("cmd", fmt.Sprintf("%s %s", r.path, strings.Join(cmdArgs, " "))).Msg("[adb] run")

	cmd := exec.CommandContext(ctx, r.path, cmdArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error().Err(err).Str("output", string(output)).Msg("[adb] run cmd failed")
		return output, fmt.Errorf("adb %s: %w", args[0], err)
	}

	log.Debug().Str("output", string(output)).Msg("[adb] raw output")
	return output, nil
}

func (r *ADBDevice) ListDevices(ctx context.Context) ([]definitions.DeviceInfo, error) {
	output, err := r.run(ctx, "", "devices", "-l")
	if err != nil {
		return nil, err
	}
	return parseDeviceList(string(output)), nil
}

func parseDeviceList(output string) []definitions.DeviceInfo {
	var devices []definitions.DeviceInfo
	scanner := bufio.NewScanner(strings.NewReader(output))

	// Skip the first line (header)
	scanner.Scan()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		serial := parts[0]
		status := parts[1]

		connType := definitions.USB
		if strings.Contains(serial, ":") {
			connType = definitions.Remote
		}

		var model string
		for _, part := range parts[2:] {
			if strings.HasPrefix(part, "model:") {
				model = strings.SplitN(part, ":", 2)[1]
				break
			}
		}

		devices = append(devices, definitions.DeviceInfo{
			DeviceID:       serial,
			Status:         status,
			ConnectionType: connType,
			Model:          model,
		})
	}

	return devices
}

// ConnectRemote issues adb connect for a host:port address. Plain USB serials
// never need this; the session layer only validates those against the device
// list.
func (r *ADBDevice) ConnectRemote(ctx context.Context, address string) (string, error) {
	output, err := r.run(ctx, "", "connect", address)
	if err != nil {
		return fmt.Sprintf("connect error: %v", err), err
	}
	return parseConnectOutput(address, string(output))
}

// parseConnectOutput sniffs adb connect output. adb exits 0 even on refused
// connections, so success is decided by the message: "connected to <addr>"
// or "already connected to <addr>".
func parseConnectOutput(address, output string) (string, error) {
	lowerOutput := strings.ToLower(output)

	if strings.Contains(lowerOutput, "already connected") {
		return fmt.Sprintf("already connected to %s", address), nil
	}
	if strings.Contains(lowerOutput, "connected to") {
		return fmt.Sprintf("connected to %s", address), nil
	}

	msg := strings.TrimSpace(output)
	return msg, fmt.Errorf("connect %s: %s", address, msg)
}

func (r *ADBDevice) Disconnect(ctx context.Context, address string) (string, error) {
	args := []string{"disconnect"}
	if address != "" {
		args = append(args, address)
	}

	output, err := r.run(ctx, "", args...)
	if err != nil {
		return fmt.Sprintf("disconnect error: %v", err), err
	}
	return strings.TrimSpace(string(output)), nil
}

func (r *ADBDevice) ScreenSize(ctx context.Context, serial string) (*definitions.ScreenSize, error) {
	output, err := r.run(ctx, serial, "shell", "wm", "size")
	if err != nil {
		return nil, err
	}
	return parseScreenSize(string(output))
}

// parseScreenSize reads wm size output such as
//
//	Physical size: 1080x2340
//	Override size: 1080x1920
//
// preferring the override line when present.
func parseScreenSize(output string) (*definitions.ScreenSize, error) {
	var physical, override string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Physical size:"):
			physical = strings.TrimSpace(strings.TrimPrefix(line, "Physical size:"))
		case strings.HasPrefix(line, "Override size:"):
			override = strings.TrimSpace(strings.TrimPrefix(line, "Override size:"))
		}
	}

	size := override
	if size == "" {
		size = physical
	}
	if size == "" {
		return nil, fmt.Errorf("no screen size in wm output: %q", strings.TrimSpace(output))
	}

	dims := strings.SplitN(size, "x", 2)
	if len(dims) != 2 {
		return nil, fmt.Errorf("malformed screen size: %q", size)
	}

	width, err := strconv.Atoi(strings.TrimSpace(dims[0]))
	if err != nil {
		return nil, fmt.Errorf("malformed screen width: %q", size)
	}
	height, err := strconv.Atoi(strings.TrimSpace(dims[1]))
	if err != nil {
		return nil, fmt.Errorf("malformed screen height: %q", size)
	}

	return &definitions.ScreenSize{Width: width, Height: height}, nil
}
