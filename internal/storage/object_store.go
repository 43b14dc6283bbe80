// Package storage — хранилище изображений осмотра поверх MinIO/S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore — контракт контент-хранилища. Пути объектов начинаются
// с "<reportID>/", что даёт выборку всех объектов отчёта по префиксу.
type ObjectStore interface {
	// Put загружает объект.
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error

	// PublicURL возвращает постоянную публичную ссылку на объект.
	PublicURL(path string) string

	// Fetch отдаёт содержимое объекта. Вызывающий закрывает reader.
	Fetch(ctx context.Context, path string) (io.ReadCloser, error)

	// Remove удаляет перечисленные объекты. Удаление отсутствующего
	// объекта — не ошибка.
	Remove(ctx context.Context, paths []string) error

	// ListPrefix возвращает пути всех объектов с данным префиксом.
	ListPrefix(ctx context.Context, prefix string) ([]string, error)
}

// MinioStore реализует ObjectStore поверх MinIO.
type MinioStore struct {
	client *minio.Client
	bucket string
}

var _ ObjectStore = (*MinioStore)(nil)

// NewMinioStore подключается к MinIO и создаёт бакет, если его ещё нет.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return &MinioStore{client: client, bucket: bucket}, nil
}

// Put загружает объект.
func (m *MinioStore) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, path, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

// Fetch отдаёт содержимое объекта.
func (m *MinioStore) Fetch(ctx context.Context, path string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", path, err)
	}
	return obj, nil
}

// PublicURL строит прямую ссылку на объект в публичном бакете.
func (m *MinioStore) PublicURL(path string) string {
	u := *m.client.EndpointURL()
	u.Path = "/" + m.bucket + "/" + path
	return u.String()
}

// Remove удаляет объекты по одному; отсутствующие пропускаются молча.
func (m *MinioStore) Remove(ctx context.Context, paths []string) error {
	for _, p := range paths {
		if err := m.client.RemoveObject(ctx, m.bucket, p, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove object %s: %w", p, err)
		}
	}
	return nil
}

// ListPrefix перечисляет объекты с данным префиксом.
func (m *MinioStore) ListPrefix(ctx context.Context, prefix string) ([]string, error) {
	var paths []string
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		paths = append(paths, obj.Key)
	}
	return paths, nil
}
