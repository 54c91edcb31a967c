package s3

import (
	"context"
	"errors"
	"io"
	"net/url"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/docfold/docfold/pkg/conf"
	"github.com/docfold/docfold/pkg/filesystem/driver"
	"github.com/docfold/docfold/pkg/logging"
	"github.com/samber/lo"
)

// Driver S3 compatible driver
type Driver struct {
	bucket          string
	chunkSize       int64
	deleteBatchSize int

	l   logging.Logger
	svc s3iface.S3API
}

// New connects to the bucket described by config.
func New(config *conf.ObjectStore, l logging.Logger) (*Driver, error) {
	if config.Bucket == "" {
		return nil, errors.New("object store bucket is not configured")
	}

	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, ""),
		Endpoint:         aws.String(config.Endpoint),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(config.ForcePathStyle),
	})
	if err != nil {
		return nil, err
	}

	return NewWithClient(s3.New(sess), config, l), nil
}

// NewWithClient builds a driver on an existing client.
func NewWithClient(svc s3iface.S3API, config *conf.ObjectStore, l logging.Logger) *Driver {
	chunkSize := config.ChunkSize
	if chunkSize == 0 {
		chunkSize = 25 << 20 // 25 MB
	}

	batchSize := config.DeleteBatchSize
	if batchSize == 0 {
		// https://docs.aws.amazon.com/AmazonS3/latest/API/API_DeleteObjects.html
		// The request can contain a list of up to 1000 keys that you want to delete.
		batchSize = 1000
	}

	return &Driver{
		bucket:          config.Bucket,
		chunkSize:       chunkSize,
		deleteBatchSize: batchSize,
		l:               l,
		svc:             svc,
	}
}

// Bucket returns the bucket name.
func (handler *Driver) Bucket() string {
	return handler.bucket
}

// Put uploads the stream, switching to multipart above the chunk size.
func (handler *Driver) Put(ctx context.Context, file io.Reader, dst string, size uint64) error {
	uploader := s3manager.NewUploaderWithClient(handler.svc, func(u *s3manager.Uploader) {
		u.PartSize = handler.chunkSize
	})

	_, err := uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: &handler.bucket,
		Key:    &dst,
		Body:   io.LimitReader(file, int64(size)),
	})

	return err
}

// Copy duplicates src into dst server side.
func (handler *Driver) Copy(ctx context.Context, src, dst string) error {
	_, err := handler.svc.CopyObjectWithContext(ctx, &s3.CopyObjectInput{
		Bucket:     &handler.bucket,
		CopySource: aws.String(url.PathEscape(handler.bucket + "/" + src)),
		Key:        &dst,
	})

	return err
}

// Delete removes keys in batches. Returns keys not removed and the last error.
func (handler *Driver) Delete(ctx context.Context, keys []string) ([]string, error) {
	failed := make([]string, 0, len(keys))
	var lastErr error

	groups := lo.Chunk(keys, handler.deleteBatchSize)
	for _, group := range groups {
		if len(group) == 1 {
			_, err := handler.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
				Bucket: &handler.bucket,
				Key:    &group[0],
			})

			if err != nil {
				if aerr, ok := err.(awserr.Error); ok {
					// Ignore NoSuchKey error
					if aerr.Code() == s3.ErrCodeNoSuchKey {
						continue
					}
				}
				failed = append(failed, group[0])
				lastErr = err
			}
			continue
		}

		res, err := handler.svc.DeleteObjectsWithContext(ctx, &s3.DeleteObjectsInput{
			Bucket: &handler.bucket,
			Delete: &s3.Delete{
				Objects: lo.Map(group, func(s string, i int) *s3.ObjectIdentifier {
					return &s3.ObjectIdentifier{Key: aws.String(s)}
				}),
				Quiet: aws.Bool(true),
			},
		})

		if err != nil {
			failed = append(failed, group...)
			lastErr = err
			continue
		}

		for _, v := range res.Errors {
			if aws.StringValue(v.Code) == s3.ErrCodeNoSuchKey {
				continue
			}
			handler.l.Debug("Failed to delete object %q, code: %s, message: %s",
				aws.StringValue(v.Key), aws.StringValue(v.Code), aws.StringValue(v.Message))
			failed = append(failed, aws.StringValue(v.Key))
			lastErr = errors.New(aws.StringValue(v.Message))
		}
	}

	return failed, lastErr
}

// List pages through every object under prefix.
func (handler *Driver) List(ctx context.Context, prefix string, fn func([]driver.Object) error) error {
	var walkErr error
	err := handler.svc.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket:  &handler.bucket,
		Prefix:  &prefix,
		MaxKeys: aws.Int64(1000),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		objects := lo.Map(page.Contents, func(o *s3.Object, i int) driver.Object {
			return driver.Object{
				Key:          aws.StringValue(o.Key),
				Size:         uint64(aws.Int64Value(o.Size)),
				LastModified: aws.TimeValue(o.LastModified),
			}
		})

		if walkErr = fn(objects); walkErr != nil {
			return false
		}
		return true
	})

	if err != nil {
		return err
	}
	return walkErr
}
