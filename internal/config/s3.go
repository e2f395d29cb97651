package config

type S3Config struct {
	BaseEndpoint string `yaml:"endpoint"`
	RegionName   string `yaml:"region"`
	BucketName   string `yaml:"bucket"`
	AccessKeyID  string `yaml:"access-key"`
	SecretKey    string `yaml:"secret-key"`
}

func (s *S3Config) Endpoint() string {
	return s.BaseEndpoint
}

func (s *S3Config) Region() string {
	if s.RegionName == "" {
		return "us-east-1"
	}
	return s.RegionName
}

func (s *S3Config) Bucket() string {
	return s.BucketName
}

func (s *S3Config) AccessKey() string {
	return s.AccessKeyID
}

func (s *S3Config) SecretAccessKey() string {
	return s.SecretKey
}

// Enabled is false without a bucket, reports are then not archived.
func (s *S3Config) Enabled() bool {
	return s.BucketName != ""
}
