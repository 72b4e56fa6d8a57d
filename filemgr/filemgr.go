package filemgr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

type EntityType string
type PictureType string

const (
	EntityUser   EntityType = "user"
	EntityArtist EntityType = "artist"
	EntityGig    EntityType = "gig"

	PicPhoto   PictureType = "photo"
	PicBanner  PictureType = "banner"
	PicArtwork PictureType = "artwork"
	PicThumb   PictureType = "thumb"
)

const maxUploadBytes = 10 << 20

var (
	allowedExtensions = map[PictureType][]string{
		PicPhoto:   {".jpg", ".jpeg", ".png", ".gif", ".webp"},
		PicBanner:  {".jpg", ".jpeg", ".png"},
		PicArtwork: {".jpg", ".jpeg", ".png", ".webp"},
		PicThumb:   {".jpg"},
	}

	allowedMIMEs = map[PictureType][]string{
		PicPhoto:   {"image/jpeg", "image/png", "image/gif", "image/webp"},
		PicBanner:  {"image/jpeg", "image/png"},
		PicArtwork: {"image/jpeg", "image/png", "image/webp"},
		PicThumb:   {"image/jpeg"},
	}

	pictureSubfolders = map[PictureType]string{
		PicPhoto:   "photo",
		PicBanner:  "banner",
		PicArtwork: "artwork",
		PicThumb:   "thumb",
	}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
)

func ResolvePath(entity EntityType, picType PictureType) string {
	subfolder := pictureSubfolders[picType]
	if subfolder == "" {
		subfolder = "misc"
	}
	return filepath.Join("static", "uploads", strings.ToLower(string(entity)), subfolder)
}

func ensureSafeFilename(name, ext string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	name = regexp.MustCompile(`[^a-z0-9_\-]`).ReplaceAllString(name, "")
	if name == "" {
		return uuid.New().String() + ext
	}
	return name + ext
}

func isExtensionAllowed(ext string, picType PictureType) bool {
	for _, a := range allowedExtensions[picType] {
		if ext == a {
			return true
		}
	}
	return false
}

func isMIMEAllowed(mimeType string, picType PictureType) bool {
	for _, a := range allowedMIMEs[picType] {
		if mimeType == a {
			return true
		}
	}
	return false
}

func stripEXIF(img image.Image) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
	return buf, err
}

// SaveImageForEntity validates, re-encodes and stores an uploaded image and
// writes a 200px thumbnail next to it. Returns the stored filename.
func SaveImageForEntity(file multipart.File, header *multipart.FileHeader, entity EntityType, picType PictureType) (string, error) {
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isExtensionAllowed(ext, picType) {
		return "", fmt.Errorf("%w: %s for %s", ErrInvalidExtension, ext, picType)
	}
	if header.Size > maxUploadBytes {
		return "", ErrFileTooLarge
	}

	buf, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if len(buf) > maxUploadBytes {
		return "", ErrFileTooLarge
	}

	mimeType := http.DetectContentType(buf)
	if !isMIMEAllowed(mimeType, picType) {
		return "", fmt.Errorf("%w: %s for %s", ErrInvalidMIME, mimeType, picType)
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	// Re-encoding drops EXIF and normalizes the format.
	stripped, err := stripEXIF(img)
	if err == nil {
		buf = stripped.Bytes()
		ext = ".jpg"
	}

	destDir := ResolvePath(entity, picType)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", destDir, err)
	}

	filename := ensureSafeFilename(uuid.New().String(), ext)
	fullPath := filepath.Join(destDir, filename)
	if err := os.WriteFile(fullPath, buf, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", fullPath, err)
	}

	if err := generateThumbnail(img, entity, filename); err != nil {
		// A missing thumbnail is not worth failing the upload for.
		return filename, nil
	}

	return filename, nil
}

func generateThumbnail(img image.Image, entity EntityType, baseFilename string) error {
	resized := imaging.Resize(img, 200, 0, imaging.Lanczos)
	name := strings.TrimSuffix(baseFilename, filepath.Ext(baseFilename)) + ".jpg"
	path := filepath.Join(ResolvePath(entity, PicThumb), name)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return imaging.Save(resized, path, imaging.JPEGQuality(85))
}
