// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	client := awss3.NewFromConfig(cfg)
//	store := s3.NewStore(client, "my-bucket", "tableaux/")
//
// For multiple writers sharing one prefix, wrap the store in a DDBCommitStore
// so that updates to the CURRENT pointer are ordered by a DynamoDB
// conditional write:
//
//	commits := s3.NewDDBCommitStore(store, dynamodb.NewFromConfig(cfg),
//	    "stabgo-commits", "s3://my-bucket/tableaux/")
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads for large snapshots
//   - CRC32C checksums on single-part uploads
//   - Automatic pagination for listing
package s3
