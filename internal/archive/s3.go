package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"

	"github.com/debemdeboas/chronicler/internal/config"
)

// S3API is the subset of the S3 client the archive uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading S3 config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// ParseS3Location splits s3://bucket/prefix into its parts.
func ParseS3Location(location string) (bucket, prefix string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 location: %w", err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid S3 location: %q", location)
	}
	return u.Host, strings.Trim(u.Path, "/"), nil
}

// S3Directory treats a key prefix as a directory. Subdirectories need no creation.
type S3Directory struct {
	client S3API
	bucket string
	prefix string
}

func NewS3Directory(client S3API, bucket, prefix string) *S3Directory {
	return &S3Directory{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (d *S3Directory) Name() string {
	return "s3://" + path.Join(d.bucket, d.prefix)
}

func (d *S3Directory) key(name string) string {
	if d.prefix == "" {
		return name
	}
	return d.prefix + "/" + name
}

func (d *S3Directory) Dir(_ context.Context, name string) (Directory, error) {
	if err := ValidateEntryName(name); err != nil {
		return nil, err
	}
	return &S3Directory{client: d.client, bucket: d.bucket, prefix: d.key(name)}, nil
}

func (d *S3Directory) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	if err := ValidateEntryName(name); err != nil {
		return nil, err
	}
	return &s3Object{ctx: ctx, dir: d, key: d.key(name)}, nil
}

var _ io.WriteCloser = (*s3Object)(nil)

// s3Object buffers writes and uploads the object on Close.
type s3Object struct {
	ctx    context.Context
	dir    *S3Directory
	key    string
	buf    bytes.Buffer
	closed bool
}

func (o *s3Object) Write(p []byte) (int, error) {
	if o.closed {
		return 0, fmt.Errorf("write to closed object %s", o.key)
	}
	return o.buf.Write(p)
}

func (o *s3Object) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true

	data := o.buf.Bytes()
	_, err := o.dir.client.PutObject(o.ctx, &s3.PutObjectInput{
		Bucket:      aws.String(o.dir.bucket),
		Key:         aws.String(o.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimetype.Detect(data).String()),
	})
	if err != nil {
		return fmt.Errorf("error uploading %s: %w", o.key, err)
	}

	archiveLogger.Debug().Str("bucket", o.dir.bucket).Str("key", o.key).Int("size", len(data)).Msg("Object uploaded")
	return nil
}
