package config

import (
	"fmt"
	"os"
)

// Credential environment variables.
const (
	EnvHCloudToken = "HCLOUD_TOKEN"
	EnvS3Endpoint  = "S3_ENDPOINT"
	EnvS3Region    = "S3_REGION"
	EnvS3AccessKey = "S3_ACCESS_KEY"
	EnvS3SecretKey = "S3_SECRET_KEY"
)

// DefaultS3Region is used when S3_REGION is unset.
const DefaultS3Region = "fsn1"

// ValidS3Regions contains the Hetzner Object Storage locations.
// https://docs.hetzner.com/storage/object-storage/overview/
var ValidS3Regions = map[string]bool{
	"fsn1": true, // Falkenstein, Germany
	"nbg1": true, // Nuremberg, Germany
	"hel1": true, // Helsinki, Finland
}

// HCloudCredentials authenticate against the Hetzner Cloud API.
type HCloudCredentials struct {
	Token string
}

// S3Credentials authenticate against an S3-compatible object storage.
type S3Credentials struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// HCloudFromEnv reads Hetzner Cloud credentials.
func HCloudFromEnv() (HCloudCredentials, error) {
	creds := HCloudCredentials{Token: os.Getenv(EnvHCloudToken)}
	if err := requireField(EnvHCloudToken, creds.Token); err != nil {
		return HCloudCredentials{}, err
	}
	return creds, nil
}

// S3FromEnv reads object storage credentials.
func S3FromEnv() (S3Credentials, error) {
	creds := S3Credentials{
		Endpoint:  os.Getenv(EnvS3Endpoint),
		Region:    os.Getenv(EnvS3Region),
		AccessKey: os.Getenv(EnvS3AccessKey),
		SecretKey: os.Getenv(EnvS3SecretKey),
	}
	if creds.Region == "" {
		creds.Region = DefaultS3Region
	}

	for _, f := range []struct{ name, value string }{
		{EnvS3Endpoint, creds.Endpoint},
		{EnvS3AccessKey, creds.AccessKey},
		{EnvS3SecretKey, creds.SecretKey},
	} {
		if err := requireField(f.name, f.value); err != nil {
			return S3Credentials{}, err
		}
	}

	if !ValidS3Regions[creds.Region] {
		return S3Credentials{}, fmt.Errorf("%w: %s %q is not an object storage location", ErrInvalidValue, EnvS3Region, creds.Region)
	}
	return creds, nil
}

func requireField(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	return nil
}
