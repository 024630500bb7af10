// Package encode decodes input images and writes output images in the
// supported formats, atomically.
package encode

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	// WebP inputs decode; there is no WebP encoder, so .webp never
	// appears in the output format table.
	_ "golang.org/x/image/webp"
)

// Format describes one supported output format.
type Format struct {
	Ext             string
	Name            string
	SupportsQuality bool
	Lossless        bool

	id imaging.Format
}

var formats = []Format{
	{Ext: ".png", Name: "PNG", Lossless: true, id: imaging.PNG},
	{Ext: ".jpg", Name: "JPEG", SupportsQuality: true, id: imaging.JPEG},
	{Ext: ".jpeg", Name: "JPEG", SupportsQuality: true, id: imaging.JPEG},
	{Ext: ".gif", Name: "GIF", id: imaging.GIF},
	{Ext: ".tif", Name: "TIFF", Lossless: true, id: imaging.TIFF},
	{Ext: ".tiff", Name: "TIFF", Lossless: true, id: imaging.TIFF},
	{Ext: ".bmp", Name: "BMP", Lossless: true, id: imaging.BMP},
}

// ByExt looks up a format by extension, case-insensitive. The leading dot
// is required.
func ByExt(ext string) (Format, bool) {
	ext = strings.ToLower(ext)
	for _, f := range formats {
		if f.Ext == ext {
			return f, true
		}
	}
	return Format{}, false
}

// Formats returns all supported formats in declaration order.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// Exts returns the supported output extensions.
func Exts() []string {
	exts := make([]string, len(formats))
	for i, f := range formats {
		exts[i] = f.Ext
	}
	return exts
}

// InputExts returns the extensions Open can decode. A superset of Exts:
// WebP decodes but cannot be written back out.
func InputExts() []string {
	return append(Exts(), ".webp")
}

// Encode writes img to w. Quality applies only to formats that support
// it and is clamped to 1-100; PNG always uses best compression.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	var opts []imaging.EncodeOption
	if f.SupportsQuality {
		if quality < 1 {
			quality = 1
		} else if quality > 100 {
			quality = 100
		}
		opts = append(opts, imaging.JPEGQuality(quality))
	}
	if f.id == imaging.PNG {
		opts = append(opts, imaging.PNGCompressionLevel(png.BestCompression))
	}

	if err := imaging.Encode(w, img, f.id, opts...); err != nil {
		return fmt.Errorf("encode %s: %w", f.Name, err)
	}
	return nil
}

// Save writes img to path atomically: encode into a temp file in the
// same directory, then rename over the final name. A failed write leaves
// no partial file behind.
func Save(path string, img image.Image, f Format, quality int) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := Encode(tmp, img, f, quality); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Open decodes an input image, honoring EXIF orientation.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	return img, nil
}
