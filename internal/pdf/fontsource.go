package pdf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// FileFontSource reads the typeface from local disk
type FileFontSource struct {
	RegularPath string
	BoldPath    string
}

func (s *FileFontSource) Regular(ctx context.Context) ([]byte, error) {
	return os.ReadFile(s.RegularPath)
}

func (s *FileFontSource) Bold(ctx context.Context) ([]byte, error) {
	if s.BoldPath == "" {
		return nil, nil
	}
	return os.ReadFile(s.BoldPath)
}

// HTTPFontSource fetches the typeface from well-known URLs
type HTTPFontSource struct {
	RegularURL string
	BoldURL    string
	Client     *http.Client
}

func (s *HTTPFontSource) Regular(ctx context.Context) ([]byte, error) {
	return s.fetch(ctx, s.RegularURL)
}

func (s *HTTPFontSource) Bold(ctx context.Context) ([]byte, error) {
	if s.BoldURL == "" {
		return nil, nil
	}
	return s.fetch(ctx, s.BoldURL)
}

func (s *HTTPFontSource) fetch(ctx context.Context, url string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("font fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// S3FontSource fetches the typeface from an S3-compatible bucket (R2)
type S3FontSource struct {
	client     *s3.Client
	bucket     string
	regularKey string
	boldKey    string
}

// S3FontConfig carries the bucket coordinates and static credentials for an
// S3-compatible font store
type S3FontConfig struct {
	Endpoint   string
	Region     string
	AccessKey  string
	SecretKey  string
	Bucket     string
	RegularKey string
	BoldKey    string
}

func NewS3FontSource(ctx context.Context, cfg S3FontConfig) (*S3FontSource, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure font bucket client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &S3FontSource{
		client:     client,
		bucket:     cfg.Bucket,
		regularKey: cfg.RegularKey,
		boldKey:    cfg.BoldKey,
	}, nil
}

func (s *S3FontSource) Regular(ctx context.Context) ([]byte, error) {
	return s.get(ctx, s.regularKey)
}

func (s *S3FontSource) Bold(ctx context.Context) ([]byte, error) {
	if s.boldKey == "" {
		return nil, nil
	}
	return s.get(ctx, s.boldKey)
}

func (s *S3FontSource) get(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch font %s from bucket: %w", key, err)
	}
	defer result.Body.Close()
	return io.ReadAll(result.Body)
}
