package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type cloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
	index  Index
}

// NewCloudinaryStorage keeps image bytes in Cloudinary and their metadata in
// index. An empty cloudinaryURL falls back to the CLOUDINARY_URL environment
// variable read by the SDK.
func NewCloudinaryStorage(cloudinaryURL, folder string, index Index) (ObjectStorage, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
	} else {
		cld, err = cloudinary.New()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	// Ensure HTTPS URLs by default.
	cld.Config.URL.Secure = true

	return &cloudinaryStorage{cld: cld, folder: folder, index: index}, nil
}

func (s *cloudinaryStorage) Put(ctx context.Context, obj *Object) (string, error) {
	params := uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       strings.TrimSuffix(obj.Key, filepath.Ext(obj.Key)),
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(false),
		Overwrite:      api.Bool(false),
	}

	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(obj.Data), params)
	if err != nil {
		return "", fmt.Errorf("failed to upload image to cloudinary: %w", err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	meta := *obj
	meta.Data = nil
	meta.RemoteURL = resp.SecureURL
	if err := s.index.Save(ctx, &meta); err != nil {
		_ = s.destroy(ctx, resp.SecureURL)
		return "", err
	}

	return PublicURL(obj.Key), nil
}

func (s *cloudinaryStorage) Get(ctx context.Context, key string) (*Object, error) {
	return s.index.Find(ctx, key)
}

func (s *cloudinaryStorage) Delete(ctx context.Context, key string) error {
	obj, err := s.index.Find(ctx, key)
	if err != nil {
		return err
	}
	if obj.RemoteURL != "" {
		if err := s.destroy(ctx, obj.RemoteURL); err != nil {
			return err
		}
	}
	return s.index.Remove(ctx, key)
}

func (s *cloudinaryStorage) destroy(ctx context.Context, fileURL string) error {
	publicID := extractPublicID(fileURL)
	if publicID == "" {
		return fmt.Errorf("could not extract public ID from URL: %s", fileURL)
	}

	// Invalidate: true helps to clear CDN cache
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from cloudinary: %w", err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}
	return nil
}

// extractPublicID turns a delivery URL into the asset public ID.
// https://res.cloudinary.com/demo/image/upload/v123/folder/sample.jpg -> folder/sample
func extractPublicID(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}

	parts := strings.Split(u.Path, "/")
	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}
	if uploadIndex == -1 || uploadIndex+1 >= len(parts) {
		return ""
	}

	rest := parts[uploadIndex+1:]
	if len(rest) > 1 && isVersionSegment(rest[0]) {
		rest = rest[1:]
	}

	withExt := strings.Join(rest, "/")
	return strings.TrimSuffix(withExt, filepath.Ext(withExt))
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
