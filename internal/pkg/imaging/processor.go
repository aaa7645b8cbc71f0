package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ProcessedAvatar contains the encoded avatar image
type ProcessedAvatar struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Config for avatar processing
type Config struct {
	Size    int // Avatar edge size in pixels, square center crop (default 256)
	Quality int // JPEG quality 1-100 (default 85)
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		Size:    256,
		Quality: 85,
	}
}

// Processor handles avatar image processing
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	if config.Size <= 0 {
		config.Size = 256
	}
	if config.Quality <= 0 {
		config.Quality = 85
	}
	return &Processor{config: config}
}

// Process decodes an uploaded image and produces a square avatar crop.
func (p *Processor) Process(reader io.Reader) (*ProcessedAvatar, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Square center crop
	avatar := imaging.Fill(img, p.config.Size, p.config.Size, imaging.Center, imaging.Lanczos)

	encoded, err := p.encode(avatar, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode avatar: %w", err)
	}

	return &ProcessedAvatar{
		Data:        encoded,
		ContentType: mimeFromFormat(format),
		Width:       avatar.Bounds().Dx(),
		Height:      avatar.Bounds().Dy(),
	}, nil
}

func (p *Processor) encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		// JPEG for everything else (gif/webp uploads are re-encoded)
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.config.Quality}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func mimeFromFormat(format string) string {
	switch format {
	case "png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// ValidateType checks if file is a valid image type
func ValidateType(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	default:
		return false
	}
}

// ValidateSize checks if file size is within limits (in bytes)
func ValidateSize(size int64, maxSize int64) bool {
	return size > 0 && size <= maxSize
}

// Ext returns the output file extension for a processed avatar
func Ext(contentType string) string {
	if contentType == "image/png" {
		return ".png"
	}
	return ".jpg"
}
