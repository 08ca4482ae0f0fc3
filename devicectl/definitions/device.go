package definitions

type ConnectionType string

const (
	USB    ConnectionType = "usb"
	Remote ConnectionType = "remote"
)

type DeviceInfo struct {
	DeviceID       string         `json:"id"`
	Status         string         `json:"status"`
	ConnectionType ConnectionType `json:"connection_type"`
	Model          string         `json:"model,omitempty"`
}

// Ready reports whether the device is in the "device" state, i.e.
// authorized and usable. Other adb states (offline, unauthorized) are not.
func (d DeviceInfo) Ready() bool {
	return d.Status == "device"
}

// Screenshot holds one fresh capture. Data is the raw PNG bytes as pulled
// from the device; never cached between requests.
type Screenshot struct {
	Data   []byte `json:"-"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ScreenSize is the device's native resolution as reported by wm size.
type ScreenSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
