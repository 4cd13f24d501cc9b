package repository

import (
	"context"
	"errors"
	"fmt"

	"clabs.com/website/internal/entity"
	"clabs.com/website/pkg/b64chunk"
	"clabs.com/website/pkg/storage"
	"gorm.io/gorm"
)

type databaseStorage struct {
	repo UploadRepository
}

// NewDatabaseStorage keeps image bytes as base64 text in uploaded_images.
func NewDatabaseStorage(repo UploadRepository) storage.ObjectStorage {
	return &databaseStorage{repo: repo}
}

func (s *databaseStorage) Put(ctx context.Context, obj *storage.Object) (string, error) {
	image := toEntity(obj)
	image.Base64Data = b64chunk.Encode(obj.Data)
	if err := s.repo.Create(ctx, image); err != nil {
		return "", fmt.Errorf("store image %s: %w", obj.Key, err)
	}
	return storage.PublicURL(obj.Key), nil
}

func (s *databaseStorage) Get(ctx context.Context, key string) (*storage.Object, error) {
	image, err := s.repo.FindByFilename(ctx, key)
	if err != nil {
		return nil, mapNotFound(err)
	}

	obj := toObject(image)
	if image.StorageURL != "" {
		return obj, nil
	}

	data, err := b64chunk.Decode(image.Base64Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s has a corrupt payload: %v", storage.ErrObjectNotFound, key, err)
	}
	obj.Data = data
	return obj, nil
}

func (s *databaseStorage) Delete(ctx context.Context, key string) error {
	n, err := s.repo.DeleteByFilename(ctx, key)
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrObjectNotFound
	}
	return nil
}

type metadataIndex struct {
	repo UploadRepository
}

// NewIndex records remote objects in uploaded_images without a payload.
func NewIndex(repo UploadRepository) storage.Index {
	return &metadataIndex{repo: repo}
}

func (i *metadataIndex) Save(ctx context.Context, obj *storage.Object) error {
	return i.repo.Create(ctx, toEntity(obj))
}

func (i *metadataIndex) Find(ctx context.Context, key string) (*storage.Object, error) {
	image, err := i.repo.FindByFilename(ctx, key)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toObject(image), nil
}

func (i *metadataIndex) Remove(ctx context.Context, key string) error {
	_, err := i.repo.DeleteByFilename(ctx, key)
	return err
}

func toEntity(obj *storage.Object) *entity.UploadedImage {
	return &entity.UploadedImage{
		Filename:     obj.Key,
		OriginalName: obj.OriginalName,
		FileSize:     obj.Size,
		FileType:     obj.ContentType,
		StorageURL:   obj.RemoteURL,
	}
}

func toObject(image *entity.UploadedImage) *storage.Object {
	return &storage.Object{
		Key:          image.Filename,
		OriginalName: image.OriginalName,
		ContentType:  image.FileType,
		Size:         image.FileSize,
		RemoteURL:    image.StorageURL,
		CreatedAt:    image.CreatedAt,
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrObjectNotFound
	}
	return err
}
