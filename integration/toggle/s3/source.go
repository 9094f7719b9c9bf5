package s3

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/fanout/core/toggle"
)

var _ toggle.Source = (*Source)(nil)

// maxObjectSize caps how much of the object is read.
const maxObjectSize = 1 << 10

// Client is the subset of the S3 API used by Source.
type Client interface {
	GetObject(ctx context.Context, params *s3aws.GetObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error)
}

// Config locates the object holding the switch value.
type Config struct {
	Bucket         string `env:"TOGGLE_S3_BUCKET"`
	Key            string `env:"TOGGLE_S3_KEY"`
	Region         string `env:"TOGGLE_S3_REGION"`
	AccessKeyID    string `env:"TOGGLE_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"TOGGLE_S3_SECRET_KEY"`
	Endpoint       string `env:"TOGGLE_S3_ENDPOINT"` // For S3-compatible services like MinIO
	ForcePathStyle bool   `env:"TOGGLE_S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// Option configures a Source.
type Option func(*options)

type options struct {
	client        Client
	httpClient    *http.Client
	configOptions []func(*config.LoadOptions) error
	clientOptions []func(*s3aws.Options)
}

// WithClient sets a pre-configured client. Config credentials and endpoint are ignored.
func WithClient(client Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithHTTPClient sets the HTTP client used by the SDK.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithConfigOption adds an AWS config load option.
func WithConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.configOptions = append(o.configOptions, option)
	}
}

// WithClientOption adds an S3 client option.
func WithClientOption(option func(*s3aws.Options)) Option {
	return func(o *options) {
		o.clientOptions = append(o.clientOptions, option)
	}
}

// Source reads a toggle value from an S3 object.
type Source struct {
	client Client
	bucket string
	key    string
}

// New creates a Source. Without WithClient it builds an S3 client from the
// default AWS configuration, using static credentials when both are set.
func New(ctx context.Context, cfg Config, opts ...Option) (*Source, error) {
	if cfg.Bucket == "" || cfg.Key == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}
		if o.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(o.httpClient))
		}
		awsOptions = append(awsOptions, o.configOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client = s3aws.NewFromConfig(awsConfig, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
			for _, opt := range o.clientOptions {
				opt(so)
			}
		})
	}

	return &Source{client: client, bucket: cfg.Bucket, key: cfg.Key}, nil
}

// Fetch returns the object body, capped at 1 KiB.
func (s *Source) Fetch(ctx context.Context) (string, error) {
	out, err := s.client.GetObject(ctx, &s3aws.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return "", classifyError(err, s.key)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(io.LimitReader(out.Body, maxObjectSize))
	if err != nil {
		return "", classifyError(err, s.key)
	}
	return string(body), nil
}
