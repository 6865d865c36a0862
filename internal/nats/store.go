package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	// subjectRoot prefixes every inquiry subject.
	subjectRoot = "inquiry"
	// AttachmentBucket is the object store holding inquiry attachments.
	AttachmentBucket = "inquiry_attachments"
	// DefaultRetention applies when SetupStream is given no retention.
	DefaultRetention = 365 * 24 * time.Hour
)

// SubjectForCollection returns the wildcard subject for every record in a
// collection. Example: "inquiry.project_inquiries.>"
func SubjectForCollection(collection string) string {
	return fmt.Sprintf("%s.%s.>", subjectRoot, collection)
}

// SubjectForRecord returns the subject one record is published on.
// Example: "inquiry.project_inquiries.6f1c..."
func SubjectForRecord(collection, id string) string {
	return fmt.Sprintf("%s.%s.%s", subjectRoot, collection, id)
}

// SetupStream creates or updates the stream backing a collection. The stream
// is named after the collection.
func SetupStream(ctx context.Context, js jetstream.JetStream, collection string, retention time.Duration) (jetstream.Stream, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}
	stream, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        collection,
		Description: "Submitted " + collection,
		Subjects:    []string{SubjectForCollection(collection)},
		Storage:     jetstream.FileStorage,
		MaxAge:      retention,
		Duplicates:  2 * time.Minute,
	})
	if err != nil {
		return nil, fmt.Errorf("creating stream %s: %w", collection, err)
	}
	return stream, nil
}

// SetupAttachmentStore creates or updates the attachment object store.
func SetupAttachmentStore(ctx context.Context, js jetstream.JetStream, retention time.Duration) (jetstream.ObjectStore, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}
	obs, err := js.CreateOrUpdateObjectStore(ctx, jetstream.ObjectStoreConfig{
		Bucket:      AttachmentBucket,
		Description: "Files attached to project inquiries",
		Storage:     jetstream.FileStorage,
		TTL:         retention,
	})
	if err != nil {
		return nil, fmt.Errorf("creating object store %s: %w", AttachmentBucket, err)
	}
	return obs, nil
}

// CreateConsumer creates an ephemeral consumer that replays a subject from the
// beginning with explicit acks.
func CreateConsumer(ctx context.Context, stream jetstream.Stream, filter string) (jetstream.Consumer, error) {
	return stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: filter,
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
	})
}
