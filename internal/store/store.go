// Package store persists submitted inquiries in an embedded JetStream server.
// Records are messages on a stream named after the collection; attachments
// are objects in a separate bucket keyed by inquiry id.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/jothom/inquiry/internal/logger"
	"github.com/jothom/inquiry/internal/nats"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

var log = logger.Named("store")

// Message headers set on every stored record.
const (
	HeaderSubmittedAt = "Inquiry-Submitted-At"
	HeaderCollection  = "Inquiry-Collection"
)

// Object metadata keys set on every stored attachment.
const (
	MetaInquiryID    = "inquiry_id"
	MetaOriginalName = "original_name"
	MetaMediaType    = "media_type"
)

var (
	// ErrNotFound is returned when no inquiry has the requested id.
	ErrNotFound = errors.New("inquiry not found")
	// ErrUnknownCollection is returned for inserts into a collection this
	// store does not serve.
	ErrUnknownCollection = errors.New("unknown collection")
)

// Inquiry is a stored record with its stream metadata.
type Inquiry struct {
	ID          string
	Sequence    uint64
	SubmittedAt time.Time
	Record      inquiry.Record
}

// AttachmentInfo describes a stored attachment.
type AttachmentInfo struct {
	Object    string
	Name      string
	MediaType string
	Size      uint64
}

// Store implements inquiry.Inserter and inquiry.Uploader on JetStream.
type Store struct {
	js         jetstream.JetStream
	stream     jetstream.Stream
	objects    jetstream.ObjectStore
	collection string
	now        func() time.Time
}

var (
	_ inquiry.Inserter = (*Store)(nil)
	_ inquiry.Uploader = (*Store)(nil)
)

// New sets up the stream and attachment bucket for collection and returns a
// store over them.
func New(ctx context.Context, js jetstream.JetStream, collection string, retention time.Duration) (*Store, error) {
	stream, err := nats.SetupStream(ctx, js, collection, retention)
	if err != nil {
		return nil, err
	}
	objects, err := nats.SetupAttachmentStore(ctx, js, retention)
	if err != nil {
		return nil, err
	}
	return &Store{
		js:         js,
		stream:     stream,
		objects:    objects,
		collection: collection,
		now:        time.Now,
	}, nil
}

// Collection returns the collection this store serves.
func (s *Store) Collection() string {
	return s.collection
}

// Insert publishes a record and returns its new id. The record body is the
// record's JSON with the backend's field names.
func (s *Store) Insert(ctx context.Context, collection string, r inquiry.Record) (string, error) {
	if collection != s.collection {
		return "", fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal inquiry: %w", err)
	}

	id := uuid.NewString()
	msg := natsgo.NewMsg(nats.SubjectForRecord(collection, id))
	msg.Data = data
	msg.Header.Set(HeaderSubmittedAt, s.now().UTC().Format(time.RFC3339Nano))
	msg.Header.Set(HeaderCollection, collection)

	ack, err := s.js.PublishMsg(ctx, msg,
		jetstream.WithMsgID(id),
		jetstream.WithExpectStream(collection),
	)
	if err != nil {
		log.Error("Failed to publish inquiry to %s: %v", msg.Subject, err)
		return "", fmt.Errorf("failed to publish inquiry: %w", err)
	}
	if ack == nil || ack.Stream != collection {
		return "", fmt.Errorf("%w: ack from unexpected stream", inquiry.ErrMalformedResponse)
	}
	if ack.Duplicate {
		return "", fmt.Errorf("%w: duplicate ack for %s", inquiry.ErrMalformedResponse, id)
	}

	log.Debug("Inquiry published: id=%s seq=%d", id, ack.Sequence)
	return id, nil
}

// Upload stores each file as an object named <id>/<nn>-<slug><ext>. Every file
// is attempted; failures are joined into the returned error.
func (s *Store) Upload(ctx context.Context, inquiryID string, files []inquiry.Attachment) error {
	var errs []error
	for i, f := range files {
		name := ObjectName(inquiryID, i, f.Name)
		meta := jetstream.ObjectMeta{
			Name:        name,
			Description: f.Name,
			Metadata: map[string]string{
				MetaInquiryID:    inquiryID,
				MetaOriginalName: f.Name,
				MetaMediaType:    f.MediaType,
			},
		}
		if _, err := s.objects.Put(ctx, meta, bytes.NewReader(f.Data)); err != nil {
			log.Error("Failed to store attachment %s: %v", name, err)
			errs = append(errs, fmt.Errorf("storing %s: %w", f.Name, err))
			continue
		}
		log.Debug("Stored attachment %s (%d bytes)", name, len(f.Data))
	}
	return errors.Join(errs...)
}

// ObjectName builds the object key for the i-th attachment of an inquiry.
func ObjectName(inquiryID string, i int, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	base := slug.Make(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s/%02d-%s%s", inquiryID, i+1, base, ext)
}

// List returns every stored inquiry, oldest first. Messages that do not
// decode are skipped with a warning.
func (s *Store) List(ctx context.Context) ([]Inquiry, error) {
	consumer, err := nats.CreateConsumer(ctx, s.stream, nats.SubjectForCollection(s.collection))
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	const batchSize = 500
	var out []Inquiry
	malformed := 0
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		n := 0
		for msg := range msgs.Messages() {
			n++
			meta, err := msg.Metadata()
			if err != nil {
				malformed++
				_ = msg.Ack()
				continue
			}
			inq, err := decode(msg.Subject(), meta.Sequence.Stream, meta.Timestamp, msg.Headers(), msg.Data())
			if err != nil {
				malformed++
				log.Warn("Skipping malformed inquiry (seq=%d): %v", meta.Sequence.Stream, err)
				_ = msg.Ack()
				continue
			}
			out = append(out, inq)
			_ = msg.Ack()
		}
		if err := msgs.Error(); err != nil {
			log.Debug("Fetch ended: %v", err)
		}
		if n < batchSize {
			break
		}
	}

	if malformed > 0 {
		log.Warn("Skipped %d malformed inquiries", malformed)
	}
	return out, nil
}

// Get returns one inquiry by id.
func (s *Store) Get(ctx context.Context, id string) (Inquiry, error) {
	raw, err := s.stream.GetLastMsgForSubject(ctx, nats.SubjectForRecord(s.collection, id))
	if err != nil {
		if errors.Is(err, jetstream.ErrMsgNotFound) {
			return Inquiry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Inquiry{}, fmt.Errorf("failed to load inquiry: %w", err)
	}
	return decode(raw.Subject, raw.Sequence, raw.Time, raw.Header, raw.Data)
}

// Attachments lists the stored files of an inquiry in upload order.
func (s *Store) Attachments(ctx context.Context, id string) ([]AttachmentInfo, error) {
	infos, err := s.objects.List(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoObjectsFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	var out []AttachmentInfo
	for _, info := range infos {
		if info.Metadata[MetaInquiryID] != id {
			continue
		}
		out = append(out, AttachmentInfo{
			Object:    info.Name,
			Name:      info.Metadata[MetaOriginalName],
			MediaType: info.Metadata[MetaMediaType],
			Size:      info.Size,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Object < out[j].Object })
	return out, nil
}

// AttachmentData returns the content of a stored attachment.
func (s *Store) AttachmentData(ctx context.Context, object string) ([]byte, error) {
	data, err := s.objects.GetBytes(ctx, object)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment %s: %w", object, err)
	}
	return data, nil
}

func decode(subject string, seq uint64, ts time.Time, hdr natsgo.Header, data []byte) (Inquiry, error) {
	var r inquiry.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Inquiry{}, fmt.Errorf("decoding record: %w", err)
	}

	id := subject[strings.LastIndex(subject, ".")+1:]
	submitted := ts
	if v := hdr.Get(HeaderSubmittedAt); v != "" {
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			submitted = t
		}
	}
	return Inquiry{ID: id, Sequence: seq, SubmittedAt: submitted, Record: r}, nil
}
