package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrijs2005/savespace/internal/common"
	sc "github.com/dmitrijs2005/savespace/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
	listObjectsV2 = func(c *s3.Client, ctx context.Context, in *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
		return c.ListObjectsV2(ctx, in)
	}
	headObject = func(c *s3.Client, ctx context.Context, in *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
		return c.HeadObject(ctx, in)
	}
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3Store implements Store on an S3-compatible backend.
type S3Store struct {
	config *sc.Config
}

// NewS3Store constructs a store using the S3 settings from config.
func NewS3Store(config *sc.Config) *S3Store {
	return &S3Store{config: config}
}

func (s *S3Store) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Put writes the object. An existing object at the same key is overwritten
// silently: last writer wins, no uniqueness check.
func (s *S3Store) Put(ctx context.Context, key string, body io.Reader) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &s.config.S3Bucket,
		Key:    &key,
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// List returns all objects under prefix (a namespace, without the trailing
// slash), following continuation tokens.
func (s *S3Store) List(ctx context.Context, prefix string) ([]Object, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	dir := prefix + "/"

	var result []Object
	var token *string
	for {
		out, err := listObjectsV2(client, ctx, &s3.ListObjectsV2Input{
			Bucket:            &s.config.S3Bucket,
			Prefix:            aws.String(dir),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list objects %s: %w", dir, err)
		}

		for _, c := range out.Contents {
			key := aws.ToString(c.Key)
			if key == dir {
				// folder placeholder object
				continue
			}
			result = append(result, Object{Key: key, Name: path.Base(key)})
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		token = out.NextContinuationToken
	}

	return result, nil
}

// DownloadLocator builds the stable public URL for a key. It is pure string
// assembly, so the same key always yields the same locator.
func (s *S3Store) DownloadLocator(key string) string {
	base := strings.TrimRight(s.config.S3BaseEndpoint, "/")
	return base + "/" + s.config.S3Bucket + "/" + escapeKey(key)
}

func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// PresignedGetURL returns a temporary download URL for the object.
func (s *S3Store) PresignedGetURL(ctx context.Context, key string) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &s.config.S3Bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.PresignValidityDuration))
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", key, err)
	}

	return req.URL, nil
}

// SizeMetadata returns the object's byte size from its head metadata.
func (s *S3Store) SizeMetadata(ctx context.Context, key string) (int64, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return 0, err
	}

	out, err := headObject(client, ctx, &s3.HeadObjectInput{
		Bucket: &s.config.S3Bucket,
		Key:    &key,
	})
	if err != nil {
		if isNotFound(err) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("head object %s: %w", key, err)
	}

	return aws.ToInt64(out.ContentLength), nil
}

// Delete removes the object, failing with ErrorNotFound when it is absent.
// S3 deletes are idempotent, so absence is detected with a head call first.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	if _, err := headObject(client, ctx, &s3.HeadObjectInput{
		Bucket: &s.config.S3Bucket,
		Key:    &key,
	}); err != nil {
		if isNotFound(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("head object %s: %w", key, err)
	}

	if _, err := deleteObject(client, ctx, &s3.DeleteObjectInput{
		Bucket: &s.config.S3Bucket,
		Key:    &key,
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}

	return nil
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var ae smithy.APIError
	return errors.As(err, &ae) && (ae.ErrorCode() == "NotFound" || ae.ErrorCode() == "NoSuchKey")
}
