// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	awsx "github.com/staranto/seqctl/internal/aws"
)

var ErrInvalidDestination = errors.New("invalid export destination")

// Scheme identifies where a Destination lives.
type Scheme string

const (
	SchemeFile Scheme = "file"
	SchemeS3   Scheme = "s3"
)

// Destination is a parsed --export value.
type Destination struct {
	Scheme Scheme
	// Path is set for SchemeFile.
	Path string
	// Bucket and Key are set for SchemeS3.
	Bucket string
	Key    string
}

func (d Destination) String() string {
	if d.Scheme == SchemeS3 {
		return "s3://" + d.Bucket + "/" + d.Key
	}
	return d.Path
}

// ParseDestination accepts a local path, a file:// URI or s3://bucket/key.
func ParseDestination(dest string) (Destination, error) {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return Destination{}, fmt.Errorf("%w: empty", ErrInvalidDestination)
	}

	if !strings.Contains(dest, "://") {
		return Destination{Scheme: SchemeFile, Path: dest}, nil
	}

	u, err := url.Parse(dest)
	if err != nil {
		return Destination{}, fmt.Errorf("%w: %s", ErrInvalidDestination, err)
	}

	switch Scheme(u.Scheme) {
	case SchemeFile:
		p := u.Path
		if u.Host != "" {
			// file://relative/path
			p = filepath.Join(u.Host, p)
		}
		if p == "" {
			return Destination{}, fmt.Errorf("%w: %s has no path", ErrInvalidDestination, dest)
		}
		return Destination{Scheme: SchemeFile, Path: p}, nil
	case SchemeS3:
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" || strings.HasSuffix(key, "/") {
			return Destination{}, fmt.Errorf("%w: %s must be s3://bucket/key", ErrInvalidDestination, dest)
		}
		return Destination{Scheme: SchemeS3, Bucket: u.Host, Key: key}, nil
	default:
		return Destination{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidDestination, u.Scheme)
	}
}

// Exporter stores one rendered document.
type Exporter interface {
	Export(ctx context.Context, body []byte) error
}

// New returns the Exporter for dest. AWS options only matter for s3
// destinations.
func New(ctx context.Context, dest string, opts ...awsx.Option) (Exporter, error) {
	d, err := ParseDestination(dest)
	if err != nil {
		return nil, err
	}

	switch d.Scheme {
	case SchemeS3:
		cfg, err := awsx.LoadAWSConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		return &S3Exporter{Client: awsx.NewS3(cfg), Bucket: d.Bucket, Key: d.Key}, nil
	default:
		return &FileExporter{Path: d.Path}, nil
	}
}

// FileExporter writes to a local file, creating parent directories.
type FileExporter struct {
	Path string
}

func (e *FileExporter) Export(_ context.Context, body []byte) error {
	if dir := filepath.Dir(e.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(e.Path, body, 0o644); err != nil {
		return fmt.Errorf("failed to export to %s: %w", e.Path, err)
	}
	log.Debugf("exported %d bytes to %s", len(body), e.Path)
	return nil
}

// PutObjectAPI is the part of the S3 client S3Exporter needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Exporter uploads to a single S3 object.
type S3Exporter struct {
	Client PutObjectAPI
	Bucket string
	Key    string
}

func (e *S3Exporter) Export(ctx context.Context, body []byte) error {
	_, err := e.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awsv2.String(e.Bucket),
		Key:         awsv2.String(e.Key),
		Body:        bytes.NewReader(body),
		ContentType: awsv2.String(ContentType(e.Key)),
	})
	if err != nil {
		return fmt.Errorf("failed to export to s3://%s/%s: %w", e.Bucket, e.Key, err)
	}
	log.Debugf("exported %d bytes to s3://%s/%s", len(body), e.Bucket, e.Key)
	return nil
}

// ContentType guesses a MIME type from the key's extension.
func ContentType(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}
