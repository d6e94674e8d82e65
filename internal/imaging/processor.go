// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging stores post images: it decodes uploads, fixes EXIF
// orientation, scales them down to the configured width and writes them
// under the uploads directory with random names.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/olegiv/blogicum/internal/util"
)

const (
	// PostsDir is the uploads subdirectory for post images.
	PostsDir = "posts"
	// MaxUploadSize is the largest accepted upload in bytes.
	MaxUploadSize = 10 << 20
	// DefaultMaxWidth is used when no width limit is configured.
	DefaultMaxWidth = 1200

	jpegQuality = 90
)

// Upload errors.
var (
	ErrUnsupportedFormat = errors.New("загрузите правильное изображение: файл не является JPEG, PNG, GIF или WebP")
	ErrTooLarge          = fmt.Errorf("размер изображения превышает %d МБ", MaxUploadSize>>20)
)

// Processor writes and removes post images.
type Processor struct {
	uploadDir string
	maxWidth  int
}

// NewProcessor creates a processor rooted at uploadDir. Images wider than
// maxWidth are scaled down; maxWidth <= 0 selects DefaultMaxWidth.
func NewProcessor(uploadDir string, maxWidth int) *Processor {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	return &Processor{uploadDir: uploadDir, maxWidth: maxWidth}
}

// UploadDir returns the root directory served under /media/.
func (p *Processor) UploadDir() string { return p.uploadDir }

// SavePostImage stores an uploaded image and returns its path relative to
// the uploads directory, for example "posts/<uuid>.jpg".
func (p *Processor) SavePostImage(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("reading image data: %w", err)
	}
	if len(data) > MaxUploadSize {
		return "", ErrTooLarge
	}

	format := detectFormat(data)
	if format == "" {
		return "", ErrUnsupportedFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrUnsupportedFormat
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))
	if img.Bounds().Dx() > p.maxWidth {
		img = imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)
	}

	// Pure Go has no WebP encoder; those uploads are stored as JPEG.
	if format == "webp" {
		format = "jpeg"
	}

	encoded, err := encodeImage(img, format)
	if err != nil {
		return "", fmt.Errorf("encoding image: %w", err)
	}

	rel := path.Join(PostsDir, uuid.NewString()+extension(format))
	if err := p.writeFile(rel, encoded); err != nil {
		return "", err
	}
	return rel, nil
}

// Delete removes a previously stored image. Missing files and empty
// paths are not an error.
func (p *Processor) Delete(rel string) error {
	if rel == "" {
		return nil
	}
	full, err := util.SafeJoin(p.uploadDir, filepath.FromSlash(rel))
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting image: %w", err)
	}
	return nil
}

func (p *Processor) writeFile(rel string, data []byte) error {
	full, err := util.SafeJoin(p.uploadDir, filepath.FromSlash(rel))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	return nil
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation undoes the camera rotation recorded in EXIF
// orientation values 2 to 8.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// TIFF is rejected outright (CVE-2023-36308 in disintegration/imaging).
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

func extension(format string) string {
	switch format {
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
