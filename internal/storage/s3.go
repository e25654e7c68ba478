// Package storage provides per-user object storage backed by Amazon S3 or
// any S3-compatible service. Object keys are namespaced by user ID so users
// only ever see their own files.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/kbukum/vibeapi/internal/logger"
)

// FileInfo describes a stored object.
type FileInfo struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Service implements object storage on S3.
type Service struct {
	client *awss3.Client
	cfg    Config
	log    *logger.Logger
}

// NewService creates an S3-backed storage service.
func NewService(ctx context.Context, cfg Config, log *logger.Logger) (*Service, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	var s3Opts []func(*awss3.Options)
	if cfg.Endpoint != "" || cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = true
		})
	}

	return &Service{
		client: awss3.NewFromConfig(awsCfg, s3Opts...),
		cfg:    cfg,
		log:    log.WithComponent("storage"),
	}, nil
}

// objectKey namespaces a file name under the owning user.
func objectKey(userID uuid.UUID, name string) string {
	return userID.String() + "/" + strings.TrimLeft(name, "/")
}

// Upload stores an object under the user's namespace.
func (s *Service) Upload(ctx context.Context, userID uuid.UUID, name, contentType string, reader io.Reader) error {
	input := &awss3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(objectKey(userID, name)),
		Body:   reader,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("storage: upload %s: %w", name, err)
	}

	s.log.Debug("Object uploaded", map[string]interface{}{
		"user_id": userID.String(),
		"name":    name,
	})
	return nil
}

// Download returns a reader over the user's object. The caller must close it.
func (s *Service) Download(ctx context.Context, userID uuid.UUID, name string) (io.ReadCloser, string, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(objectKey(userID, name)),
	})
	if err != nil {
		return nil, "", fmt.Errorf("storage: download %s: %w", name, err)
	}

	contentType := ""
	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	return out.Body, contentType, nil
}

// Delete removes the user's object.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID, name string) error {
	_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(objectKey(userID, name)),
	})
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", name, err)
	}
	return nil
}

// List returns the user's objects, names stripped of the namespace prefix.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]FileInfo, error) {
	prefix := userID.String() + "/"
	input := &awss3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Bucket),
		Prefix: aws.String(prefix),
	}

	var files []FileInfo
	for {
		out, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("storage: list: %w", err)
		}

		for _, obj := range out.Contents {
			info := FileInfo{
				Name: strings.TrimPrefix(aws.ToString(obj.Key), prefix),
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				info.LastModified = *obj.LastModified
			}
			files = append(files, info)
		}

		if !aws.ToBool(out.IsTruncated) {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}

	return files, nil
}

// MaxUploadBytes returns the configured upload size limit.
func (s *Service) MaxUploadBytes() int64 {
	return s.cfg.MaxUploadBytes
}
