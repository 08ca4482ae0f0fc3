package devicectl

import (
	"context"
	"fmt"
	"time"

	"github.com/spance/adbpanel-go/devicectl/android"
	"github.com/spance/adbpanel-go/devicectl/definitions"
)

// DeviceOperator covers the input/output operations the panel drives.
type DeviceOperator interface {
	Screenshot(ctx context.Context, serial string) (*definitions.Screenshot, error)
	Tap(ctx context.Context, x, y int, serial string) error
	Swipe(ctx context.Context, startX, startY, endX, endY, durationMs int, serial string) error
	Key(ctx context.Context, keyCode int, serial string) error
	TypeText(ctx context.Context, text, serial string) error
}

// DeviceManager covers device enumeration and connection management.
type DeviceManager interface {
	ListDevices(ctx context.Context) ([]definitions.DeviceInfo, error)
	ConnectRemote(ctx context.Context, address string) (string, error)
	Disconnect(ctx context.Context, address string) (string, error)
	ScreenSize(ctx context.Context, serial string) (*definitions.ScreenSize, error)
}

type Device interface {
	DeviceOperator
	DeviceManager
}

const ADB = "adb"

// Options configure the underlying bridge tool invocation.
type Options struct {
	// Path to the adb binary; bare "adb" resolves via PATH.
	Path string
	// Timeout bounds every single bridge invocation.
	Timeout time.Duration
}

func CreateDevice(kind string, opts Options) (Device, error) {
	switch kind {
	case ADB:
		return android.NewADBDevice(opts.Path, opts.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown device type: %v", kind)
	}
}
