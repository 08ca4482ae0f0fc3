package android

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spance/adbpanel-go/devicectl/definitions"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Screenshot captures the device screen and returns the raw PNG. The capture
// goes through a file on the device and a uuid-named local temp file; both
// are removed afterwards.
func (r *ADBDevice) Screenshot(ctx context.Context, serial string) (*definitions.Screenshot, error) {
	name := fmt.Sprintf("adbpanel_%s.png", uuid.New().String())
	remotePath := "/sdcard/" + name
	localPath := filepath.Join(os.TempDir(), name)
	defer func() {
		_ = os.Remove(localPath)
	}()

	output, err := r.run(ctx, serial, "shell", "screencap", "-p", remotePath)
	if err != nil {
		return nil, fmt.Errorf("screencap failed: %w", err)
	}

	outputStr := string(output)
	if strings.Contains(outputStr, "Status: -1") || strings.Contains(outputStr, "Failed") {
		log.Error().Str("output", outputStr).Msg("[Screenshot] screencap reported failure")
		return nil, fmt.Errorf("screencap failed: %s", strings.TrimSpace(outputStr))
	}

	if _, err = r.run(ctx, serial, "pull", remotePath, localPath); err != nil {
		return nil, fmt.Errorf("pulling screenshot failed: %w", err)
	}

	// Best effort; a leftover file on the sdcard is harmless.
	_, _ = r.run(ctx, serial, "shell", "rm", remotePath)

	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("reading screenshot file: %w", err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding screenshot: %w", err)
	}

	return &definitions.Screenshot{
		Data:   data,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

func (r *ADBDevice) Tap(ctx context.Context, x, y int, serial string) error {
	_, err := r.run(ctx, serial, "shell", "input", "tap", strconv.Itoa(x), strconv.Itoa(y))
	return err
}

func (r *ADBDevice) Swipe(ctx context.Context, startX, startY, endX, endY, durationMs int, serial string) error {
	if durationMs <= 0 {
		durationMs = 300
	}
	_, err := r.run(ctx, serial,
		"shell", "input", "swipe",
		strconv.Itoa(startX), strconv.Itoa(startY),
		strconv.Itoa(endX), strconv.Itoa(endY),
		strconv.Itoa(durationMs),
	)
	return err
}

func (r *ADBDevice) Key(ctx context.Context, keyCode int, serial string) error {
	_, err := r.run(ctx, serial, "shell", "input", "keyevent", strconv.Itoa(keyCode))
	return err
}

func (r *ADBDevice) TypeText(ctx context.Context, text, serial string) error {
	_, err := r.run(ctx, serial, "shell", "input", "text", escapeInputText(text))
	return err
}

// escapeInputText rewrites text for adb shell input: spaces become %s and
// quotes are backslash-escaped.
func escapeInputText(text string) string {
	replacer := strings.NewReplacer(
		" ", "%s",
		"'", `\'`,
		`"`, `\"`,
	)
	return replacer.Replace(text)
}
