package helpers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gabriel-vasile/mimetype"
)

const UploadsURLPrefix = "/uploads"

type StoredImage struct {
	Path        string
	ContentType string
}

type ImageStore interface {
	SaveImage(ctx context.Context, file *multipart.FileHeader) (*StoredImage, error)
}

// UniqueFilename prefixes the base of the client-supplied name with a
// millisecond timestamp.
func UniqueFilename(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), base)
}

func sniff(src multipart.File) (string, error) {
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to detect content type: %w", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}
	return mtype.String(), nil
}

// LocalImageStore writes uploads under Dir, which is served at /uploads.
type LocalImageStore struct {
	Dir string
	now func() time.Time
}

func NewLocalImageStore(dir string) *LocalImageStore {
	return &LocalImageStore{Dir: dir, now: time.Now}
}

func (s *LocalImageStore) SaveImage(ctx context.Context, file *multipart.FileHeader) (*StoredImage, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	contentType, err := sniff(src)
	if err != nil {
		return nil, err
	}

	name := UniqueFilename(file.Filename, s.now())
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", name, err)
	}

	return &StoredImage{
		Path:        path.Join(UploadsURLPrefix, name),
		ContentType: contentType,
	}, nil
}

// CloudinaryImageStore uploads into Folder and records the secure URL.
type CloudinaryImageStore struct {
	cld    *cloudinary.Cloudinary
	Folder string
	now    func() time.Time
}

func NewCloudinaryImageStore(cld *cloudinary.Cloudinary, folder string) *CloudinaryImageStore {
	return &CloudinaryImageStore{cld: cld, Folder: folder, now: time.Now}
}

func (s *CloudinaryImageStore) SaveImage(ctx context.Context, file *multipart.FileHeader) (*StoredImage, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	contentType, err := sniff(src)
	if err != nil {
		return nil, err
	}

	resourceType := "auto"
	if strings.HasPrefix(contentType, "image/") {
		resourceType = "image"
	}

	name := UniqueFilename(file.Filename, s.now())
	res, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:       s.Folder,
		PublicID:     strings.TrimSuffix(name, filepath.Ext(name)),
		ResourceType: resourceType,
		Tags:         []string{"skill-post"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image %s: %w", name, err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload image %s: %s", name, res.Error.Message)
	}

	return &StoredImage{
		Path:        res.SecureURL,
		ContentType: contentType,
	}, nil
}
