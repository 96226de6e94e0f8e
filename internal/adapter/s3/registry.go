package s3

import (
	"context"
	"net/url"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/bornholm/darkroom/internal/storage"
	"github.com/pkg/errors"

	s3config "github.com/aws/aws-sdk-go-v2/config"
)

var ErrMissingBucket = errors.New("missing bucket")

func init() {
	storage.RegisterAssetStoreFactory("s3", FromDSN)
}

type Config struct {
	// Endpoint is empty for AWS, set for S3 compatible stores
	Endpoint        string
	Bucket          string
	BasePath        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	PathStyle       bool
}

// ParseDSN extracts the client configuration from a DSN of the form
// s3://<id>:<secret>@<endpoint>/<basePath>?bucket=<bucket>&region=<region>&secure=<bool>&pathStyle=<bool>
func ParseDSN(dsn *url.URL) (*Config, error) {
	query := dsn.Query()

	conf := &Config{
		Bucket:   query.Get("bucket"),
		BasePath: dsn.Path,
		Region:   query.Get("region"),
	}

	if conf.Bucket == "" {
		return nil, errors.WithStack(ErrMissingBucket)
	}

	if conf.Region == "" {
		conf.Region = "us-east-1"
	}

	if dsn.User != nil {
		conf.AccessKeyID = dsn.User.Username()
		conf.SecretAccessKey, _ = dsn.User.Password()
		conf.SessionToken = query.Get("token")
	}

	secure := true
	if rawSecure := query.Get("secure"); rawSecure != "" {
		v, err := strconv.ParseBool(rawSecure)
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse 'secure' parameter")
		}
		secure = v
	}

	if dsn.Host != "" {
		scheme := "https"
		if !secure {
			scheme = "http"
		}
		conf.Endpoint = scheme + "://" + dsn.Host
		// S3 compatible stores rarely support virtual hosted buckets
		conf.PathStyle = true
	}

	if rawPathStyle := query.Get("pathStyle"); rawPathStyle != "" {
		v, err := strconv.ParseBool(rawPathStyle)
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse 'pathStyle' parameter")
		}
		conf.PathStyle = v
	}

	return conf, nil
}

func FromDSN(dsn *url.URL) (port.AssetStore, error) {
	conf, err := ParseDSN(dsn)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	loadOptions := []func(*s3config.LoadOptions) error{
		s3config.WithRegion(conf.Region),
	}

	if conf.AccessKeyID != "" {
		loadOptions = append(loadOptions, s3config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.SecretAccessKey, conf.SessionToken),
		))
	}

	awsConfig, err := s3config.LoadDefaultConfig(context.Background(), loadOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "could not load aws config")
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
		}
		o.UsePathStyle = conf.PathStyle
	})

	return NewAssetStore(client, conf.Bucket, conf.BasePath), nil
}
