package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/stabgo/blobstore"
	minioblob "github.com/hupe1980/stabgo/blobstore/minio"
	s3blob "github.com/hupe1980/stabgo/blobstore/s3"
)

// openStore builds the snapshot store selected by cfg.Store. An empty
// selection returns a nil store.
func openStore(ctx context.Context, cfg config) (blobstore.BlobStore, error) {
	switch strings.ToLower(cfg.Store) {
	case "":
		return nil, nil
	case "local":
		if cfg.StoreDir == "" {
			return nil, errors.New("-store local needs -store-dir")
		}
		return blobstore.NewLocalStore(cfg.StoreDir), nil
	case "s3":
		return openS3(ctx, cfg)
	case "minio":
		return openMinio(cfg)
	default:
		return nil, fmt.Errorf("unknown store %q (want local, s3 or minio)", cfg.Store)
	}
}

func openS3(ctx context.Context, cfg config) (blobstore.BlobStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("-store s3 needs -bucket")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	store := s3blob.NewStore(awss3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Prefix)
	if cfg.DDBTable == "" {
		return store, nil
	}

	baseURI := "s3://" + cfg.Bucket + "/" + strings.Trim(cfg.Prefix, "/")
	return s3blob.NewDDBCommitStore(store, dynamodb.NewFromConfig(awsCfg), cfg.DDBTable, baseURI), nil
}

func openMinio(cfg config) (blobstore.BlobStore, error) {
	if cfg.MinioEndpoint == "" || cfg.Bucket == "" {
		return nil, errors.New("-store minio needs -minio-endpoint and -bucket")
	}

	client, err := miniogo.New(cfg.MinioEndpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return minioblob.NewStore(client, cfg.Bucket, cfg.Prefix), nil
}
