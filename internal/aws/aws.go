// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
)

type options struct {
	profile  string
	region   string
	endpoint string
	retryer  func() awsv2.Retryer
}

// Option customizes how AWS config is loaded. With no options the shell's
// usual chain applies (AWS_PROFILE, AWS_REGION, ~/.aws/config, IMDS).
type Option func(*options)

// WithProfile selects a shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion overrides the region.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points every client at an S3 compatible endpoint such as
// MinIO or LocalStack.
func WithEndpoint(url string) Option {
	return func(o *options) { o.endpoint = url }
}

// WithRetryer replaces the SDK's default retryer.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// LoadAWSConfig loads AWS SDK v2 config with opts applied.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return cfg, err
	}

	if o.endpoint != "" {
		cfg.BaseEndpoint = awsv2.String(o.endpoint)
	}
	log.Debugf("aws config: profile=%q region=%q endpoint=%q", o.profile, cfg.Region, o.endpoint)

	return cfg, nil
}

// NewS3 builds an S3 client from cfg. A custom endpoint switches the client
// to path style addressing, which S3 compatible servers expect.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	if cfg.BaseEndpoint != nil {
		optFns = append([]func(*s3v2.Options){func(o *s3v2.Options) { o.UsePathStyle = true }}, optFns...)
	}
	return s3v2.NewFromConfig(cfg, optFns...)
}
