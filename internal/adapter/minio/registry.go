package minio

import (
	"net/url"
	"strconv"

	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/bornholm/darkroom/internal/storage"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

func init() {
	storage.RegisterAssetStoreFactory("minio", FromDSN)
}

type Config struct {
	Endpoint string
	Bucket   string
	BasePath string
	Options  minio.Options
}

func FromDSN(dsn *url.URL) (port.AssetStore, error) {
	conf, err := ParseDSN(dsn)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	client, err := minio.New(conf.Endpoint, &conf.Options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return NewAssetStore(client, conf.Bucket, conf.BasePath), nil
}

// ParseDSN extracts the client configuration from a DSN of the form
// minio://<id>:<secret>@<endpoint>/<basePath>?bucket=<bucket>&region=<region>&secure=<bool>
func ParseDSN(dsn *url.URL) (*Config, error) {
	// Configure funcs consume the parameters they handle
	u := *dsn
	conf := &Config{}

	configurations := []ConfigureFunc{
		configureBucket,
		configureCredentials,
		configureRegion,
		configureEndpoint,
	}

	for _, configure := range configurations {
		if err := configure(&u, conf); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	conf.BasePath = u.Path

	return conf, nil
}

type ConfigureFunc func(dsn *url.URL, conf *Config) error

const (
	paramToken  = "token"
	paramBucket = "bucket"
	paramRegion = "region"
	paramSecure = "secure"
)

func configureCredentials(dsn *url.URL, conf *Config) error {
	token := popParam(dsn, paramToken, "")

	if dsn.User == nil {
		return nil
	}

	id := dsn.User.Username()
	secret, _ := dsn.User.Password()
	dsn.User = nil

	conf.Options.Creds = credentials.NewStaticV4(id, secret, token)

	return nil
}

func configureBucket(dsn *url.URL, conf *Config) error {
	conf.Bucket = popParam(dsn, paramBucket, "default")
	return nil
}

func configureRegion(dsn *url.URL, conf *Config) error {
	conf.Options.Region = popParam(dsn, paramRegion, "us-east-1")
	return nil
}

func configureEndpoint(dsn *url.URL, conf *Config) error {
	if dsn.Host == "" {
		return errors.New("missing endpoint")
	}

	conf.Endpoint = dsn.Host

	rawSecure := popParam(dsn, paramSecure, "false")

	secure, err := strconv.ParseBool(rawSecure)
	if err != nil {
		return errors.Wrapf(err, "could not parse '%s' parameter", paramSecure)
	}

	conf.Options.Secure = secure

	return nil
}

func popParam(dsn *url.URL, name string, defaultValue string) string {
	query := dsn.Query()
	if !query.Has(name) {
		return defaultValue
	}

	value := query.Get(name)
	query.Del(name)
	dsn.RawQuery = query.Encode()

	return value
}
