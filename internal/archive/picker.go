package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrPickCancelled is returned when no location was chosen.
var ErrPickCancelled = errors.New("folder selection cancelled")

// Picker resolves a user-chosen location to a writable directory.
type Picker interface {
	Pick(ctx context.Context, location string) (Directory, error)
}

type LocalPicker struct{}

func (LocalPicker) Pick(_ context.Context, location string) (Directory, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrPickCancelled
	}

	if rest, ok := strings.CutPrefix(location, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("error resolving home directory: %w", err)
		}
		location = filepath.Join(home, rest)
	}

	abs, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("error resolving %s: %w", location, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}

	probe, err := os.CreateTemp(abs, ".chronicler-probe-*")
	if err != nil {
		return nil, fmt.Errorf("%s is not writable: %w", abs, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	return NewOSDirectory(abs), nil
}

type S3Picker struct {
	Client S3API
}

func (p S3Picker) Pick(ctx context.Context, location string) (Directory, error) {
	bucket, prefix, err := ParseS3Location(location)
	if err != nil {
		return nil, err
	}

	if _, err := p.Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return nil, fmt.Errorf("error accessing bucket %s: %w", bucket, err)
	}

	return NewS3Directory(p.Client, bucket, prefix), nil
}

// SchemePicker sends s3:// locations to S3 and everything else to Local.
type SchemePicker struct {
	Local Picker
	S3    Picker
}

func (p SchemePicker) Pick(ctx context.Context, location string) (Directory, error) {
	if strings.HasPrefix(strings.TrimSpace(location), "s3://") {
		if p.S3 == nil {
			return nil, errors.New("S3 archives are not configured")
		}
		return p.S3.Pick(ctx, strings.TrimSpace(location))
	}
	return p.Local.Pick(ctx, location)
}
