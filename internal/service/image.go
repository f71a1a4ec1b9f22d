package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lumi-diary/lumi/backend/config"
)

const avatarURLExpiry = time.Hour

// AvatarStorage stores avatar images under slash-separated keys such as
// "avatars/avatar_<user>_<unix>.jpg".
type AvatarStorage interface {
	Save(ctx context.Context, key, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string) (string, error)
}

// LocalAvatarStorage writes avatars below the static assets directory.
type LocalAvatarStorage struct {
	root      string
	urlPrefix string
}

func NewLocalAvatarStorage(staticDir string) *LocalAvatarStorage {
	return &LocalAvatarStorage{root: staticDir, urlPrefix: "/static"}
}

func (s *LocalAvatarStorage) Save(_ context.Context, key, _ string, data []byte) error {
	full, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create avatar directory: %w", err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create avatar file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write avatar file: %w", err)
	}
	return f.Sync()
}

func (s *LocalAvatarStorage) Delete(_ context.Context, key string) error {
	full, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete avatar file: %w", err)
	}
	return nil
}

func (s *LocalAvatarStorage) URL(_ context.Context, key string) (string, error) {
	return s.urlPrefix + "/" + key, nil
}

// resolve maps key into the storage root, rejecting keys that escape it.
func (s *LocalAvatarStorage) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid avatar key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

// s3API is the subset of the S3 client used for avatars.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3AvatarStorage keeps avatars in a private bucket and hands out presigned URLs.
type S3AvatarStorage struct {
	client  s3API
	bucket  string
	presign func(ctx context.Context, key string, expiry time.Duration) (string, error)
}

func NewS3AvatarStorage(cfg *config.S3Config) *S3AvatarStorage {
	return &S3AvatarStorage{
		client:  cfg.Client,
		bucket:  cfg.BucketName,
		presign: cfg.GeneratePresignedURL,
	}
}

func (s *S3AvatarStorage) Save(ctx context.Context, key, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload avatar to S3: %w", err)
	}
	return nil
}

func (s *S3AvatarStorage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete avatar from S3: %w", err)
	}
	return nil
}

func (s *S3AvatarStorage) URL(ctx context.Context, key string) (string, error) {
	return s.presign(ctx, key, avatarURLExpiry)
}
