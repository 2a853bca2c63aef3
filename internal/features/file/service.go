package file

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"go-backoffice/internal/config"
	"go-backoffice/internal/media"
	"go-backoffice/internal/storage"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Upload is the raw input handed over by the transport layer: bytes plus the
// client-declared (untrusted) filename and content type.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UploadOptions is the per-call configuration for Upload
type UploadOptions struct {
	Disk         string
	Collection   string
	Resize       bool
	Optimize     bool
	Meta         map[string]any
	AllowedTypes []string // restrict accepted categories; empty accepts everything
	OwnerType    string
	OwnerID      string
}

// DefaultUploadOptions returns the documented defaults: public disk, no
// resize, optimize on, empty metadata.
func DefaultUploadOptions() *UploadOptions {
	return &UploadOptions{
		Disk:     storage.DefaultDisk,
		Optimize: true,
	}
}

type FileService interface {
	Upload(ctx context.Context, upload *Upload, targetPath string, opts *UploadOptions) (*File, error)
	Get(ctx context.Context, id string) (*File, error)
	Delete(ctx context.Context, f *File) error
	DeleteByID(ctx context.Context, id string) error
	URL(f *File, size string) (string, error)
	Resource(f *File) (*Resource, error)
	For(ownerType, ownerID string) *Attachments
}

type FileServiceImpl struct {
	Repo      FileRepository
	Disks     *storage.Manager
	Generator *media.Generator
	Logger    *zap.Logger
	MaxBytes  int64
}

func NewFileService(repo FileRepository, disks *storage.Manager, cfg *config.Config, logger *zap.Logger) FileService {
	return &FileServiceImpl{
		Repo:      repo,
		Disks:     disks,
		Generator: media.NewGenerator(nil),
		Logger:    logger,
		MaxBytes:  int64(cfg.MaxUploadMB) << 20,
	}
}

// VariantPath derives the blob path of a named size from the original's
// path: the size name is prefixed to the base filename, the rest of the
// path is unchanged.
func VariantPath(p, size string) string {
	dir, base := path.Split(p)
	return dir + size + "_" + base
}

// Upload validates the raw file, writes all blobs and creates the record.
// Record creation is the last step: any blob-write failure aborts with no
// partial record. Orphaned blobs after a failed record insert are accepted
// and left to reconciliation.
func (s *FileServiceImpl) Upload(ctx context.Context, upload *Upload, targetPath string, opts *UploadOptions) (*File, error) {
	if opts == nil {
		opts = DefaultUploadOptions()
	}
	if opts.Disk == "" {
		opts.Disk = storage.DefaultDisk
	}

	if len(upload.Data) == 0 {
		return nil, &ValidationError{Reason: "file is empty"}
	}
	if int64(len(upload.Data)) > s.MaxBytes {
		return nil, &ValidationError{Reason: fmt.Sprintf("file exceeds %s limit", humanize.IBytes(uint64(s.MaxBytes)))}
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(upload.Data)
	}
	category := ClassifyMime(contentType)

	if len(opts.AllowedTypes) > 0 && !containsString(opts.AllowedTypes, category) {
		return nil, &ValidationError{Reason: fmt.Sprintf("file type %s is not allowed", category)}
	}

	disk, err := s.Disks.Disk(opts.Disk)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))

	// A filename collision at record creation is the one retryable failure:
	// regenerate and rewrite under the new name.
	var created *File
	for attempt := 0; attempt < 3; attempt++ {
		filename := uuid.NewString() + ext
		fullPath := strings.Trim(targetPath+"/"+filename, "/")

		if category == TypeImage && opts.Resize {
			if err := s.writeImageBlobs(ctx, disk, fullPath, upload.Data, opts.Optimize); err != nil {
				return nil, err
			}
		} else {
			if err := disk.Put(ctx, fullPath, upload.Data); err != nil {
				return nil, err
			}
		}

		meta := map[string]any{
			"extension": strings.TrimPrefix(ext, "."),
			"type":      category,
		}
		for k, v := range opts.Meta {
			meta[k] = v
		}

		created, err = s.Repo.Create(ctx, &File{
			OriginalName: filepath.Base(upload.Filename),
			Filename:     filename,
			Path:         fullPath,
			Disk:         opts.Disk,
			MimeType:     contentType,
			Size:         int64(len(upload.Data)),
			OwnerType:    opts.OwnerType,
			OwnerID:      opts.OwnerID,
			Collection:   opts.Collection,
			Meta:         meta,
		})
		if err == nil {
			return created, nil
		}
		if !IsValidation(err) {
			return nil, err
		}

		// collision: sweep the blobs written under the colliding name
		s.removeBlobs(ctx, disk, fullPath, category == TypeImage && opts.Resize)
	}
	return nil, err
}

func (s *FileServiceImpl) writeImageBlobs(ctx context.Context, disk storage.Storage, fullPath string, data []byte, optimize bool) error {
	result, err := s.Generator.Generate(data, optimize)
	if err != nil {
		return err
	}

	for _, spec := range s.Generator.Specs() {
		if err := disk.Put(ctx, VariantPath(fullPath, spec.Name), result.Variants[spec.Name]); err != nil {
			return err
		}
	}
	return disk.Put(ctx, fullPath, result.Original)
}

func (s *FileServiceImpl) removeBlobs(ctx context.Context, disk storage.Storage, fullPath string, withVariants bool) {
	if withVariants {
		for _, spec := range s.Generator.Specs() {
			if err := disk.Delete(ctx, VariantPath(fullPath, spec.Name)); err != nil {
				s.Logger.Warn("variant blob cleanup failed", zap.String("path", fullPath), zap.Error(err))
			}
		}
	}
	if err := disk.Delete(ctx, fullPath); err != nil {
		s.Logger.Warn("blob cleanup failed", zap.String("path", fullPath), zap.Error(err))
	}
}

func (s *FileServiceImpl) Get(ctx context.Context, id string) (*File, error) {
	return s.Repo.Get(ctx, id)
}

// Delete removes every size variant, the original blob and then the record.
// Blob-delete failures are logged but do not block record deletion: a
// deleted record with lingering blobs is an accepted leak since generated
// filenames are never reused.
func (s *FileServiceImpl) Delete(ctx context.Context, f *File) error {
	disk, err := s.Disks.Disk(f.Disk)
	if err != nil {
		s.Logger.Warn("unknown disk on delete, removing record only", zap.String("disk", f.Disk), zap.String("id", f.ID.Hex()))
	} else {
		s.removeBlobs(ctx, disk, f.Path, f.IsImage())
	}

	return s.Repo.Delete(ctx, f.ID.Hex())
}

func (s *FileServiceImpl) DeleteByID(ctx context.Context, id string) error {
	f, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.Delete(ctx, f)
}

// URL resolves the blob URL for a record. A size is honoured only for image
// records and configured variant names; existence of the variant blob is
// not checked.
func (s *FileServiceImpl) URL(f *File, size string) (string, error) {
	disk, err := s.Disks.Disk(f.Disk)
	if err != nil {
		return "", err
	}

	p := f.Path
	if size != "" && f.IsImage() && s.hasVariant(size) {
		p = VariantPath(f.Path, size)
	}
	return disk.URL(p), nil
}

func (s *FileServiceImpl) hasVariant(size string) bool {
	for _, spec := range s.Generator.Specs() {
		if spec.Name == size {
			return true
		}
	}
	return false
}

// Resource builds the API response shape for a record
func (s *FileServiceImpl) Resource(f *File) (*Resource, error) {
	original, err := s.URL(f, "")
	if err != nil {
		return nil, err
	}

	urls := map[string]string{"original": original}
	if f.IsImage() {
		for _, spec := range s.Generator.Specs() {
			u, err := s.URL(f, spec.Name)
			if err != nil {
				return nil, err
			}
			urls[spec.Name] = u
		}
	}

	return &Resource{
		ID:            f.ID.Hex(),
		OriginalName:  f.OriginalName,
		Filename:      f.Filename,
		MimeType:      f.MimeType,
		Size:          f.Size,
		SizeFormatted: humanize.Bytes(uint64(f.Size)),
		Collection:    f.Collection,
		Meta:          f.Meta,
		URLs:          urls,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}, nil
}

// For returns the attachment helper scoped to one owning entity
func (s *FileServiceImpl) For(ownerType, ownerID string) *Attachments {
	return &Attachments{
		svc:       s,
		ownerType: ownerType,
		ownerID:   ownerID,
	}
}

func containsString(list []string, item string) bool {
	for _, s := range list {
		if s == item {
			return true
		}
	}
	return false
}
