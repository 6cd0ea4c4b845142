// Package s3storage archives downloaded exports in a MinIO or S3 bucket.
package s3storage

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dharsanguruparan/strazak/internal/config"
)

// Storage wraps the bucket that receives archive copies.
type Storage struct {
	client *minio.Client
	bucket string
	prefix string
	region string
	now    func() time.Time
}

// New creates a MinIO client from the archive options. No request is made
// until the first call.
func New(opts config.ArchiveOptions) (*Storage, error) {
	if !opts.Enabled() {
		return nil, errors.New("archive endpoint and bucket are required")
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "init minio")
	}
	return &Storage{
		client: client,
		bucket: opts.Bucket,
		prefix: opts.Prefix,
		region: opts.Region,
		now:    time.Now,
	}, nil
}

// Bucket returns the archive bucket name.
func (s *Storage) Bucket() string { return s.bucket }

// EnsureBucket creates the archive bucket when it does not exist yet.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrapf(err, "check bucket %s", s.bucket)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return errors.Wrapf(err, "make bucket %s", s.bucket)
	}
	return nil
}

// Save uploads r under prefix/YYYY/MM/DD/name and returns its s3:// location.
func (s *Storage) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	key := ObjectKey(s.prefix, s.now(), name)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrapf(err, "upload %s", key)
	}
	return Location(s.bucket, key), nil
}

// LinkExpiry is how long links returned by Link stay valid.
const LinkExpiry = 24 * time.Hour

// Link returns a signed GET URL for a location returned by Save.
func (s *Storage) Link(ctx context.Context, loc string) (string, error) {
	key, ok := s.KeyFromLocation(loc)
	if !ok {
		return "", errors.Errorf("%s is not in bucket %s", loc, s.bucket)
	}
	return s.PresignURL(ctx, key, LinkExpiry)
}

// PresignURL returns a signed GET URL for an archived object.
func (s *Storage) PresignURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", errors.Wrapf(err, "presign %s", key)
	}
	return u.String(), nil
}

// ObjectKey builds the archive key. Directory parts of name are dropped.
func ObjectKey(prefix string, at time.Time, name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" || name == ".." {
		name = "download"
	}
	prefix = strings.Trim(prefix, "/")
	day := at.UTC().Format("2006/01/02")
	if prefix == "" {
		return day + "/" + name
	}
	return prefix + "/" + day + "/" + name
}

// Location formats bucket and key as an s3:// URL.
func Location(bucket, key string) string {
	return "s3://" + bucket + "/" + key
}

// KeyFromLocation is the inverse of Location for this bucket.
func (s *Storage) KeyFromLocation(loc string) (string, bool) {
	return strings.CutPrefix(loc, "s3://"+s.bucket+"/")
}
