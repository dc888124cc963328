package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pollbuilder/internal/extract"
	"pollbuilder/internal/fetch"
	"pollbuilder/internal/metrics"
	"pollbuilder/internal/model"
	"pollbuilder/internal/repository"
	"pollbuilder/internal/storage"
	"pollbuilder/internal/textract"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("document not found")
	ErrReaderNil       = errors.New("reader is nil")
	ErrInvalidFileType = errors.New("Invalid file type. Only PDF and DOCX are allowed.")
	ErrFileTooLarge    = errors.New("file exceeds upload limit")
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var tracer = otel.Tracer("pollbuilder/internal/service")

// ProcessResult summarizes one extraction run.
type ProcessResult struct {
	QuestionsAdded int `json:"questions_added"`
	TotalQuestions int `json:"total_questions"`
}

// DocumentService defines the use cases for source documents.
type DocumentService interface {
	// Upload stores the file under documents/{uuid}{ext}, appends pending metadata, and
	// deletes the object again if the metadata cannot be saved.
	Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64) (*model.DocumentMetadata, error)

	// List returns every uploaded document in upload order.
	List(ctx context.Context) ([]model.DocumentMetadata, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.DocumentMetadata, error)

	// Delete removes the stored file and the metadata. Questions already merged stay in the library.
	Delete(ctx context.Context, id string) error

	// Process runs extraction for the document and merges the result into the library.
	// Any failure leaves the document in the error state with the failure message.
	Process(ctx context.Context, id string) (*ProcessResult, error)
}

// DocumentDeps are the collaborators of a DocumentService.
// Metrics may be nil. MaxBytes <= 0 disables the upload size check.
type DocumentDeps struct {
	Store      storage.Storage
	Repo       repository.DocumentRepository
	Library    LibraryService
	Fetcher    fetch.Fetcher
	Extractor  textract.Extractor
	Metrics    *metrics.Pipeline
	Logger     zerolog.Logger
	MaxRetries int
	MaxBytes   int64
}

type documentService struct {
	store      storage.Storage
	repo       repository.DocumentRepository
	library    LibraryService
	fetcher    fetch.Fetcher
	extractor  textract.Extractor
	metrics    *metrics.Pipeline
	log        zerolog.Logger
	maxRetries int
	maxBytes   int64
	now        func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(d DocumentDeps) DocumentService {
	return &documentService{
		store:      d.Store,
		repo:       d.Repo,
		library:    d.Library,
		fetcher:    d.Fetcher,
		extractor:  d.Extractor,
		metrics:    d.Metrics,
		log:        d.Logger,
		maxRetries: max(d.MaxRetries, 0),
		maxBytes:   d.MaxBytes,
		now:        time.Now,
	}
}

// DetectFileType accepts the PDF and DOCX MIME types. A generic or missing
// content type falls back to the file extension.
func DetectFileType(filename, contentType string) (model.FileType, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = ""
	}
	switch mt {
	case "application/pdf":
		return model.FileTypePDF, nil
	case docxMIME:
		return model.FileTypeDOCX, nil
	case "", "application/octet-stream":
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".pdf":
			return model.FileTypePDF, nil
		case ".docx":
			return model.FileTypeDOCX, nil
		}
	}
	return "", ErrInvalidFileType
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64) (*model.DocumentMetadata, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	ft, err := DetectFileType(filename, contentType)
	if err != nil {
		return nil, err
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	key := "documents/" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	ct := docxMIME
	if ft == model.FileTypePDF {
		ct = "application/pdf"
	}

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: ct,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := model.DocumentMetadata{
		ID:         uuid.NewString(),
		Name:       filename,
		URL:        s.store.ObjectURL(objInfo.Key),
		StorageKey: objInfo.Key,
		UploadedAt: s.now().UTC(),
		Status:     model.StatusPending,
		Type:       ft,
	}
	_, err = mutate(ctx, s.repo, s.maxRetries, func(cur *repository.Snapshot[[]model.DocumentMetadata]) ([]model.DocumentMetadata, error) {
		return append(slices.Clone(cur.Data), doc), nil
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, objInfo.Key); delErr != nil {
			return nil, fmt.Errorf("metadata save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("metadata save failed: %w", err)
	}

	s.log.Info().Str("document_id", doc.ID).Str("name", doc.Name).Str("type", string(ft)).Msg("document_uploaded")
	return &doc, nil
}

func (s *documentService) List(ctx context.Context) ([]model.DocumentMetadata, error) {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	if snap.Data == nil {
		return []model.DocumentMetadata{}, nil
	}
	return slices.Clone(snap.Data), nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.DocumentMetadata, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	docs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(docs, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return &docs[i], nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if doc.StorageKey != "" {
		if err := s.store.Delete(ctx, doc.StorageKey); err != nil {
			s.log.Warn().Err(err).Str("document_id", id).Str("key", doc.StorageKey).Msg("document_object_delete_failed")
		}
	}
	_, err = mutate(ctx, s.repo, s.maxRetries, func(cur *repository.Snapshot[[]model.DocumentMetadata]) ([]model.DocumentMetadata, error) {
		return slices.DeleteFunc(slices.Clone(cur.Data), func(d model.DocumentMetadata) bool {
			return d.ID == id
		}), nil
	})
	if err != nil {
		return fmt.Errorf("delete metadata: %w", err)
	}
	return nil
}

func (s *documentService) Process(ctx context.Context, id string) (*ProcessResult, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	ctx, span := tracer.Start(ctx, "DocumentService.Process", trace.WithAttributes(attribute.String("document.id", id)))
	defer span.End()

	doc, err := s.updateDocument(ctx, id, (*model.DocumentMetadata).MarkProcessing)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	res, err := s.run(ctx, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.DocumentProcessed(model.StatusError)
		msg := err.Error()
		if _, uerr := s.updateDocument(ctx, id, func(d *model.DocumentMetadata) { d.MarkError(msg) }); uerr != nil {
			s.log.Error().Err(uerr).Str("document_id", id).Msg("document_status_update_failed")
		}
		s.log.Warn().Err(err).Str("document_id", id).Msg("document_processing_failed")
		return nil, err
	}

	if _, err := s.updateDocument(ctx, id, func(d *model.DocumentMetadata) { d.MarkDone(res.QuestionsAdded) }); err != nil {
		return nil, err
	}
	s.metrics.DocumentProcessed(model.StatusDone)
	span.SetAttributes(attribute.Int("questions.added", res.QuestionsAdded))
	s.log.Info().
		Str("document_id", id).
		Int("questions_added", res.QuestionsAdded).
		Int("total_questions", res.TotalQuestions).
		Msg("document_processed")
	return res, nil
}

// run is the pipeline itself: fetch, text extraction, segmentation, merge.
func (s *documentService) run(ctx context.Context, doc model.DocumentMetadata) (*ProcessResult, error) {
	fctx, span := tracer.Start(ctx, "fetch")
	data, err := s.fetcher.Fetch(fctx, doc)
	span.End()
	if err != nil {
		return nil, err
	}

	tctx, span := tracer.Start(ctx, "extract_text", trace.WithAttributes(attribute.String("document.type", string(doc.Type))))
	text, err := s.extractor.Extract(tctx, data, doc.Type)
	span.End()
	if err != nil {
		return nil, err
	}

	source := extract.SourceName(doc.Name)
	_, span = tracer.Start(ctx, "segment")
	questions, err := extract.Questions(text, source)
	span.End()
	if err != nil {
		return nil, err
	}
	s.metrics.QuestionsExtracted(questions)

	lib, err := s.library.ReplaceSource(ctx, source, questions)
	if err != nil {
		return nil, err
	}
	return &ProcessResult{QuestionsAdded: len(questions), TotalQuestions: len(lib.Questions)}, nil
}

// updateDocument applies fn to the stored copy of document id and returns the saved value.
func (s *documentService) updateDocument(ctx context.Context, id string, fn func(*model.DocumentMetadata)) (model.DocumentMetadata, error) {
	var out model.DocumentMetadata
	_, err := mutate(ctx, s.repo, s.maxRetries, func(cur *repository.Snapshot[[]model.DocumentMetadata]) ([]model.DocumentMetadata, error) {
		docs := slices.Clone(cur.Data)
		i := indexOf(docs, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		fn(&docs[i])
		out = docs[i]
		return docs, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return out, ErrNotFound
		}
		return out, fmt.Errorf("update document: %w", err)
	}
	return out, nil
}

func indexOf(docs []model.DocumentMetadata, id string) int {
	return slices.IndexFunc(docs, func(d model.DocumentMetadata) bool { return d.ID == id })
}
