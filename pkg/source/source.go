// Package source opens dataset inputs by path.
//
// Local paths are memory-mapped. Paths of the form s3://bucket/key are
// fetched with GetObject. A ".sz" suffix on either kind marks a snappy
// framed stream, which is decompressed transparently.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"
)

const (
	s3Scheme     = "s3://"
	snappySuffix = ".sz"
)

var ErrInvalidURI = errors.New("invalid object URI")

// S3Options configures the remote opener. Empty fields fall back to the
// default AWS credential chain and region resolution.
type S3Options struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// ObjectGetter is the subset of the S3 client used for reads.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Opener resolves paths to readers. The S3 client is created on first use.
type Opener struct {
	s3opts S3Options

	once   sync.Once
	client ObjectGetter
	err    error
}

// Option configures an Opener.
type Option func(*Opener)

// WithS3 sets the options used to build the S3 client.
func WithS3(opts S3Options) Option {
	return func(o *Opener) { o.s3opts = opts }
}

// WithS3Client uses an existing client instead of building one.
func WithS3Client(c ObjectGetter) Option {
	return func(o *Opener) {
		o.client = c
		o.once.Do(func() {})
	}
}

// NewOpener creates an Opener.
func NewOpener(opts ...Option) *Opener {
	o := &Opener{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var defaultOpener = NewOpener()

// Open opens path with a default Opener.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return defaultOpener.Open(ctx, path)
}

// Open returns a reader for path. The caller must close it.
func (o *Opener) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rc  io.ReadCloser
		err error
	)
	if strings.HasPrefix(path, s3Scheme) {
		rc, err = o.openS3(ctx, path)
	} else {
		rc, err = openLocal(path)
	}
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(path, snappySuffix) {
		return &stackedReader{Reader: snappy.NewReader(rc), closer: rc}, nil
	}
	return rc, nil
}

// IsRemote reports whether path names an S3 object.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, s3Scheme)
}

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("%w: %q lacks %s", ErrInvalidURI, uri, s3Scheme)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q must be s3://bucket/key", ErrInvalidURI, uri)
	}
	return bucket, key, nil
}

func (o *Opener) openS3(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}

	o.once.Do(func() {
		o.client, o.err = newS3Client(ctx, o.s3opts)
	})
	if o.err != nil {
		return nil, fmt.Errorf("s3 client: %w", o.err)
	}

	out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", uri, err)
	}
	return out.Body, nil
}

func newS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(so *s3.Options) {
		if opts.Endpoint != "" {
			so.BaseEndpoint = aws.String(opts.Endpoint)
		}
		so.UsePathStyle = opts.UsePathStyle
	}), nil
}

// mappedFile reads a memory-mapped file sequentially.
type mappedFile struct {
	*io.SectionReader
	m *mmap.ReaderAt
}

func openLocal(path string) (io.ReadCloser, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &mappedFile{SectionReader: io.NewSectionReader(m, 0, int64(m.Len())), m: m}, nil
}

func (f *mappedFile) Close() error {
	return f.m.Close()
}

type stackedReader struct {
	io.Reader
	closer io.Closer
}

func (s *stackedReader) Close() error {
	return s.closer.Close()
}
