package android

import (
	"testing"

	"github.com/spance/adbpanel-go/devicectl/definitions"
)

func TestParseDeviceList(t *testing.T) {
	output := "List of devices attached\n" +
		"emulator-5554          device product:sdk_gphone64_x86_64 model:sdk_gphone64_x86_64 device:emu64xa transport_id:1\n" +
		"R58M123ABCD            unauthorized transport_id:2\n" +
		"192.168.1.50:5555      device product:beyond1 model:SM_G973F device:beyond1 transport_id:3\n" +
		"\n"

	devices := parseDeviceList(output)
	if len(devices) != 3 {
		t.Fatalf("expected 3 devices, got %d", len(devices))
	}

	if devices[0].DeviceID != "emulator-5554" || devices[0].Model != "sdk_gphone64_x86_64" {
		t.Errorf("unexpected first device: %+v", devices[0])
	}
	if !devices[0].Ready() {
		t.Errorf("emulator should be ready")
	}
	if devices[0].ConnectionType != definitions.USB {
		t.Errorf("emulator should be usb, got %s", devices[0].ConnectionType)
	}

	if devices[1].Status != "unauthorized" || devices[1].Ready() {
		t.Errorf("unauthorized device must not be ready: %+v", devices[1])
	}
	if devices[1].Model != "" {
		t.Errorf("expected no model for unauthorized device, got %q", devices[1].Model)
	}

	if devices[2].ConnectionType != definitions.Remote {
		t.Errorf("host:port serial should be remote, got %s", devices[2].ConnectionType)
	}
	if devices[2].Model != "SM_G973F" {
		t.Errorf("unexpected model: %q", devices[2].Model)
	}
}

func TestParseDeviceListEmpty(t *testing.T) {
	devices := parseDeviceList("List of devices attached\n\n")
	if len(devices) != 0 {
		t.Fatalf("expected no devices, got %d", len(devices))
	}
}

func TestParseScreenSize(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		width   int
		height  int
		wantErr bool
	}{
		{
			name:   "physical only",
			output: "Physical size: 1080x2340\n",
			width:  1080, height: 2340,
		},
		{
			name:   "override preferred",
			output: "Physical size: 1080x2340\nOverride size: 1080x1920\n",
			width:  1080, height: 1920,
		},
		{
			name:    "garbage",
			output:  "error: no devices/emulators found\n",
			wantErr: true,
		},
		{
			name:    "malformed dimensions",
			output:  "Physical size: huge\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, err := parseScreenSize(tt.output)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", size)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if size.Width != tt.width || size.Height != tt.height {
				t.Errorf("got %dx%d, want %dx%d", size.Width, size.Height, tt.width, tt.height)
			}
		})
	}
}

func TestParseConnectOutput(t *testing.T) {
	const addr = "192.168.1.50:5555"

	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{
			name:   "fresh connection",
			output: "connected to 192.168.1.50:5555\n",
			want:   "connected to " + addr,
		},
		{
			name:   "already connected",
			output: "already connected to 192.168.1.50:5555\n",
			want:   "already connected to " + addr,
		},
		{
			name:    "refused",
			output:  "cannot connect to 192.168.1.50:5555: Connection refused\n",
			wantErr: true,
		},
		{
			name:    "unreachable",
			output:  "failed to connect to '192.168.1.50:5555': Operation timed out\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := parseConnectOutput(addr, tt.output)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", msg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if msg != tt.want {
				t.Errorf("got %q, want %q", msg, tt.want)
			}
		})
	}
}

func TestEscapeInputText(t *testing.T) {
	got := escapeInputText(`hello world it's "fine"`)
	want := `hello%sworld%sit\'s%s\"fine\"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
