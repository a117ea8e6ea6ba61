package s3

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ansh-patel-repos/job-listing-portal/internal/config"
)

// FilePresigner hands out short-lived upload URLs so avatar and resume
// files go straight to object storage without passing through the API.
type FilePresigner struct {
	S3PresignClient *s3.PresignClient
	BucketName      string
	Endpoint        string
}

func NewFilePresigner(cfg config.Config) (*FilePresigner, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               cfg.S3Endpoint,
			SigningRegion:     region,
			HostnameImmutable: true,
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(
		context.TODO(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
	})

	return &FilePresigner{
		S3PresignClient: s3.NewPresignClient(s3Client),
		BucketName:      cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
	}, nil
}

func (p *FilePresigner) GeneratePresignedUploadURL(objectKey string) (string, error) {
	request, err := p.S3PresignClient.PresignPutObject(
		context.TODO(),
		&s3.PutObjectInput{
			Bucket: aws.String(p.BucketName),
			Key:    aws.String(objectKey),
		},
		func(opts *s3.PresignOptions) {
			opts.Expires = 15 * time.Minute
		},
	)
	if err != nil {
		return "", err
	}

	return request.URL, nil
}

// ObjectURL is the public URL the object will have once uploaded.
func (p *FilePresigner) ObjectURL(objectKey string) string {
	return p.Endpoint + "/" + p.BucketName + "/" + objectKey
}
