// Package s3 provides a filestore that uploads to s3 compatible object stores.
package s3

import (
	"bytes"
	"io"
	"os"
	"path"

	"github.com/arolek/p"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/gdey/errors"
	"github.com/go-spatial/gridoverlay/filestore"
	"github.com/prometheus/common/log"
)

const (
	// TYPE is the name of the provider
	TYPE = "s3"

	// EnvAWSRegion aws region environment variable
	EnvAWSRegion = "AWS_REGION"
	// EnvAWSEndPoint aws end point environment variable
	EnvAWSEndPoint = "AWS_ENDPOINT"

	// DefaultRegion is the default aws region
	DefaultRegion = "us-east-1"

	// ConfigKeyRegion is the aws region [optional] defaults to "us-east-1"
	ConfigKeyRegion = "region"
	// ConfigKeyEndPoint is the aws end point to hit [optional]
	ConfigKeyEndPoint = "end_point"
	// ConfigKeyAWSAccessKeyID the aws access key [optional]
	ConfigKeyAWSAccessKeyID = "aws_access_key_id"
	// ConfigKeyAWSSecretKey the aws secret key [optional]
	ConfigKeyAWSSecretKey = "aws_secret_access_key"
	// ConfigKeyGroup places the files of each grid under a prefix named after the grid. [optional]
	ConfigKeyGroup = "group"
	// ConfigKeyBucket is the bucket to upload to [required]
	ConfigKeyBucket = "bucket"
	// ConfigKeyBasePath is the key prefix of all uploads. [optional]
	ConfigKeyBasePath = "base_path"
	// ConfigKeyVerify uploads a small object on start up to check access. [optional] defaults to true
	ConfigKeyVerify = "verify"

	// ErrMissingBucket is returned when no bucket is configured
	ErrMissingBucket = errors.String("error " + ConfigKeyBucket + " is required")
)

// verifyData is uploaded by initFunc to confirm write access
var verifyData = []byte("gridoverlay")

func initFunc(cfg filestore.Config) (filestore.Provider, error) {
	name, _ := cfg.String(filestore.ConfigKeyName, p.String(TYPE))
	bucket, err := cfg.String(ConfigKeyBucket, nil)
	if err != nil {
		return nil, err
	}
	if bucket == "" {
		return nil, ErrMissingBucket
	}
	basepath, _ := cfg.String(ConfigKeyBasePath, p.String(""))
	group, _ := cfg.Bool(ConfigKeyGroup, p.Bool(false))
	verify, _ := cfg.Bool(ConfigKeyVerify, p.Bool(true))

	filter, err := filestore.FilterFrom(cfg)
	if err != nil {
		return nil, err
	}

	region := os.Getenv(EnvAWSRegion)
	if region == "" {
		region = DefaultRegion
	}
	if region, err = cfg.String(ConfigKeyRegion, &region); err != nil {
		return nil, err
	}
	endpoint := os.Getenv(EnvAWSEndPoint)
	if endpoint, err = cfg.String(ConfigKeyEndPoint, &endpoint); err != nil {
		return nil, err
	}
	accessKey, err := cfg.String(ConfigKeyAWSAccessKeyID, p.String(""))
	if err != nil {
		return nil, err
	}
	secretKey, err := cfg.String(ConfigKeyAWSSecretKey, p.String(""))
	if err != nil {
		return nil, err
	}

	awsConfig := aws.Config{
		Region: aws.String(region),
	}
	if accessKey != "" && secretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(accessKey, secretKey, "")
	}
	if endpoint != "" {
		awsConfig.Endpoint = aws.String(endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(&awsConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating aws session for %v", name)
	}

	prv := &Provider{
		name:     name,
		bucket:   bucket,
		basepath: basepath,
		group:    group,
		filter:   filter,
		uploader: s3manager.NewUploader(sess),
	}

	if verify {
		key := path.Join(prv.basePath("upload_test"), "verify")
		_, err = prv.uploader.Upload(&s3manager.UploadInput{
			Body:   bytes.NewReader(verifyData),
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, errors.Wrapf(err, "error verifying write access to s3://%v/%v", bucket, key)
		}
	}
	log.Infof("filestore %v: uploading to s3://%v/%v", name, bucket, basepath)
	return prv, nil
}

func init() {
	filestore.Register(TYPE, initFunc, nil)
}

// Provider provides a filestore that can write to s3 object stores
type Provider struct {
	name     string
	bucket   string
	basepath string
	group    bool
	filter   filestore.Filter
	uploader *s3manager.Uploader
}

// FileWriter implements the filestore.Provider interface
func (prv *Provider) FileWriter(grp string) (filestore.FileWriter, error) {
	return Writer{
		name:     prv.name,
		bucket:   prv.bucket,
		bpath:    prv.basePath(grp),
		filter:   prv.filter,
		uploader: prv.uploader,
	}, nil
}

func (prv *Provider) basePath(grp string) string {
	if prv.group {
		return path.Join(prv.basepath, grp)
	}
	return prv.basepath
}

// ContentType is the mime type objects of the kind are uploaded with.
func ContentType(kind filestore.Kind) string {
	switch kind {
	case filestore.KindGeoJSON:
		return "application/geo+json"
	case filestore.KindSVG:
		return "image/svg+xml"
	case filestore.KindAttributes:
		return "application/toml"
	default:
		return "application/octet-stream"
	}
}

// Writer is a s3 writer
type Writer struct {
	name     string
	bucket   string
	bpath    string
	filter   filestore.Filter
	uploader *s3manager.Uploader
}

// PutObject uploads the content of r to key.
func (wrt Writer) PutObject(key string, kind filestore.Kind, r io.Reader) error {
	_, err := wrt.uploader.Upload(&s3manager.UploadInput{
		Body:        r,
		Bucket:      aws.String(wrt.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(ContentType(kind)),
	})
	return err
}

// Writer implements the filestore.FileWriter interface
func (wrt Writer) Writer(fpath string, kind filestore.Kind) (io.WriteCloser, error) {
	if !wrt.filter.Accepts(kind) {
		return nil, filestore.ErrSkipWrite
	}
	key := path.Join(wrt.bpath, fpath)
	return filestore.Pipe(TYPE, wrt.name, func(r io.Reader) error {
		return wrt.PutObject(key, kind, r)
	}), nil
}

var (
	_ = filestore.Provider(&Provider{})
	_ = filestore.FileWriter(Writer{})
)
