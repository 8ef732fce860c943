// Package qr renders text as QR code images.
package qr

import (
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"image/color"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

//go:generate counterfeiter -generate

//counterfeiter:generate -o ../fakes --fake-name QRGenerator . Generator

var ErrGeneration = errors.New("qr generation failure")

const DefaultSize = 260

type Generator interface {
	DataURI(content string) (template.URL, error)
}

// Encoder produces PNG QR codes. The zero value is usable and renders
// DefaultSize pixels, black on white.
type Encoder struct {
	Size       int
	Foreground color.Color
	Background color.Color
}

func (enc Encoder) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: empty content", ErrGeneration)
	}
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if enc.Foreground != nil {
		code.ForegroundColor = enc.Foreground
	}
	if enc.Background != nil {
		code.BackgroundColor = enc.Background
	}
	buf, err := code.PNG(enc.size())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return buf, nil
}

// DataURI returns the PNG for content as a data: URL safe to place in an
// img src attribute.
func (enc Encoder) DataURI(content string) (template.URL, error) {
	buf, err := enc.PNG(content)
	if err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf)), nil
}

func (enc Encoder) size() int {
	if enc.Size <= 0 {
		return DefaultSize
	}
	return enc.Size
}

// ParseHexColor parses "#rgb" or "#rrggbb".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
