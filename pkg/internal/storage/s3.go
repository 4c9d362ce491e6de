package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alpixn/site/pkg/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

type S3Provider struct {
	client    *s3.Client
	bucket    string
	prefix    string
	publicURL string
}

func NewS3Provider(ctx context.Context, cfg config.S3, publicURL string) (*S3Provider, error) {
	if len(cfg.Bucket) == 0 {
		return nil, fmt.Errorf("storage.s3.bucket is required for the s3 driver")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if len(cfg.AccessKey) > 0 {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if len(cfg.Endpoint) > 0 {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	prefix := strings.Trim(cfg.Prefix, "/")
	if len(publicURL) == 0 {
		if len(cfg.Endpoint) > 0 {
			publicURL = joinURL(cfg.Endpoint, cfg.Bucket)
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
		if len(prefix) > 0 {
			publicURL = joinURL(publicURL, prefix)
		}
	}

	log.Info().Str("bucket", cfg.Bucket).Str("region", cfg.Region).Msg("S3 storage client is ready...")
	return &S3Provider{
		client:    client,
		bucket:    cfg.Bucket,
		prefix:    prefix,
		publicURL: publicURL,
	}, nil
}

func (v *S3Provider) key(name string) string {
	if len(v.prefix) == 0 {
		return name
	}
	return v.prefix + "/" + name
}

func (v *S3Provider) Save(ctx context.Context, name string, data []byte, contentType string) error {
	if err := checkName(name); err != nil {
		return err
	}
	_, err := v.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(v.bucket),
		Key:         aws.String(v.key(name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("unable to put object %s: %w", name, err)
	}
	return nil
}

func (v *S3Provider) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	_, err := v.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(v.key(name)),
	})
	if err != nil {
		return fmt.Errorf("unable to delete object %s: %w", name, err)
	}
	return nil
}

func (v *S3Provider) List(ctx context.Context) ([]Object, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(v.bucket)}
	if len(v.prefix) > 0 {
		input.Prefix = aws.String(v.prefix + "/")
	}

	var objects []Object
	paginator := s3.NewListObjectsV2Paginator(v.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return objects, fmt.Errorf("unable to list objects: %w", err)
		}
		for _, item := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(item.Key), v.prefix+"/")
			if checkName(name) != nil {
				continue
			}
			objects = append(objects, Object{Name: name, ModifiedAt: aws.ToTime(item.LastModified)})
		}
	}
	return objects, nil
}

func (v *S3Provider) URL(name string) string {
	return joinURL(v.publicURL, name)
}

func (v *S3Provider) Owns(ref string) (string, bool) {
	return ownsRef(v.publicURL, ref)
}
