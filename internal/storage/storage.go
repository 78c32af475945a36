// Package storage keeps uploaded files in per-bucket directories on local
// disk and hands out public or time-limited signed URLs for them.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"mavinci/internal/pkg/jwt"
)

const (
	BucketEventFiles        = "event-files"
	BucketOfferProductPages = "offer-product-pages"
	BucketTaskAttachments   = "task-attachments"
)

// buckets maps name to whether it is publicly readable.
var buckets = map[string]bool{
	BucketEventFiles:        false,
	BucketOfferProductPages: true,
	BucketTaskAttachments:   false,
}

func IsPublic(bucket string) bool { return buckets[bucket] }

type Object struct {
	Bucket      string `json:"bucket"`
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type UploadOptions struct {
	Overwrite   bool
	ContentType string
}

type Service struct {
	baseDir    string
	urlBase    string
	maxSize    int64
	signTTL    time.Duration
	jwtService *jwt.Service
}

func NewService(baseDir, urlBase string, maxSize int64, signTTL time.Duration, jwtService *jwt.Service) *Service {
	return &Service{
		baseDir:    baseDir,
		urlBase:    strings.TrimRight(urlBase, "/"),
		maxSize:    maxSize,
		signTTL:    signTTL,
		jwtService: jwtService,
	}
}

// resolve validates bucket and object path and returns the file location.
func (s *Service) resolve(bucket, objectPath string) (string, string, error) {
	if _, ok := buckets[bucket]; !ok {
		return "", "", ErrUnknownBucket
	}
	clean := path.Clean("/" + strings.TrimSpace(objectPath))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." || strings.Contains(objectPath, "..") {
		return "", "", ErrInvalidPath
	}
	return clean, filepath.Join(s.baseDir, bucket, filepath.FromSlash(clean)), nil
}

// Upload stores r under bucket/objectPath. Without opts.Overwrite an existing
// object yields ErrObjectExists.
func (s *Service) Upload(ctx context.Context, bucket, objectPath string, r io.Reader, opts UploadOptions) (*Object, error) {
	clean, abs, err := s.resolve(bucket, objectPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// sniff content type from the first 512 bytes
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if n == 0 {
		return nil, ErrEmptyFile
	}
	head = head[:n]
	contentType := opts.ContentType
	if contentType == "" {
		contentType = strings.Split(http.DetectContentType(head), ";")[0]
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create bucket directory: %w", err)
	}

	if !opts.Overwrite {
		if _, err := os.Lstat(abs); err == nil {
			return nil, ErrObjectExists
		}
	}

	// the object only appears under its name once it is complete and within
	// the size limit, so a rejected replacement leaves the old one in place
	tmp, err := os.CreateTemp(filepath.Dir(abs), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create object: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	body := io.MultiReader(bytes.NewReader(head), r)
	limit := s.maxSize
	written, err := io.Copy(tmp, io.LimitReader(body, limit+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write object: %w", err)
	}
	if written > limit {
		return nil, ErrFileTooLarge
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write object: %w", err)
	}

	if opts.Overwrite {
		err = os.Rename(tmpName, abs)
	} else {
		// Link fails if another upload created the name meanwhile
		err = os.Link(tmpName, abs)
	}
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, ErrObjectExists
		}
		return nil, fmt.Errorf("failed to store object: %w", err)
	}

	return &Object{Bucket: bucket, Path: clean, ContentType: contentType, Size: written}, nil
}

// Open returns the object file for reading. The caller closes it.
func (s *Service) Open(bucket, objectPath string) (*os.File, error) {
	_, abs, err := s.resolve(bucket, objectPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	return f, err
}

func (s *Service) Delete(ctx context.Context, bucket, objectPath string) error {
	_, abs, err := s.resolve(bucket, objectPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err = os.Remove(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrObjectNotFound
	}
	return err
}

func (s *Service) PublicURL(bucket, objectPath string) string {
	return s.urlBase + "/public/" + bucket + "/" + escapePath(objectPath)
}

// SignedURL returns a link valid for ttl (the configured default when ttl<=0).
func (s *Service) SignedURL(bucket, objectPath string, ttl time.Duration) (string, error) {
	clean, _, err := s.resolve(bucket, objectPath)
	if err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = s.signTTL
	}
	token, err := s.jwtService.GenerateScoped(0, jwt.PurposeStorage, bucket+"/"+clean, ttl)
	if err != nil {
		return "", err
	}
	return s.urlBase + "/sign/" + bucket + "/" + escapePath(clean) + "?token=" + url.QueryEscape(token), nil
}

// VerifySigned checks that token was issued for exactly bucket/objectPath.
func (s *Service) VerifySigned(bucket, objectPath, token string) error {
	clean, _, err := s.resolve(bucket, objectPath)
	if err != nil {
		return err
	}
	claims, err := s.jwtService.ValidateScoped(token, jwt.PurposeStorage)
	if err != nil || claims.Subject != bucket+"/"+clean {
		return ErrLinkExpired
	}
	return nil
}

// ObjectName builds a collision-free object name keeping a readable part of
// the original filename.
func ObjectName(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := fmt.Sprintf("%s_%s%s", uuid.NewString(), sanitizeName(filename), ext)
	if prefix == "" {
		return name
	}
	return strings.Trim(prefix, "/") + "/" + name
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		return "file"
	}
	return name
}

func escapePath(p string) string {
	parts := strings.Split(strings.TrimPrefix(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
