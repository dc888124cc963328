package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pollbuilder/internal/extract"
	"pollbuilder/internal/fetch"
	fetchMocks "pollbuilder/internal/fetch/mocks"
	"pollbuilder/internal/metrics"
	"pollbuilder/internal/model"
	"pollbuilder/internal/repository"
	repoMocks "pollbuilder/internal/repository/mocks"
	"pollbuilder/internal/storage"
	storeMocks "pollbuilder/internal/storage/mocks"
	textMocks "pollbuilder/internal/textract/mocks"
)

const instrumentText = `GA SD 18 Survey
Q1: Do you plan to vote in the special election?
Yes
No
Q2: Do you approve or disapprove of the job the governor is doing?
Strongly approve
Somewhat approve`

func documentsOf(docs ...model.DocumentMetadata) *repoMocks.MemorySnapshot[[]model.DocumentMetadata] {
	repo := repoMocks.NewMemorySnapshot[[]model.DocumentMetadata](nil)
	if len(docs) > 0 {
		_, _ = repo.Save(context.Background(), &repository.Snapshot[[]model.DocumentMetadata]{Data: docs})
	}
	return repo
}

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		filename    string
		contentType string
		want        model.FileType
		wantErr     error
	}{
		{"a.pdf", "application/pdf", model.FileTypePDF, nil},
		{"a.docx", docxMIME, model.FileTypeDOCX, nil},
		{"a.bin", "application/pdf; charset=binary", model.FileTypePDF, nil},
		{"a.PDF", "application/octet-stream", model.FileTypePDF, nil},
		{"a.docx", "", model.FileTypeDOCX, nil},
		{"a.txt", "text/plain", "", ErrInvalidFileType},
		{"a.pdf", "text/plain", "", ErrInvalidFileType},
		{"a.doc", "application/msword", "", ErrInvalidFileType},
		{"a.txt", "application/octet-stream", "", ErrInvalidFileType},
	}
	for _, tt := range tests {
		t.Run(tt.filename+" "+tt.contentType, func(t *testing.T) {
			got, err := DetectFileType(tt.filename, tt.contentType)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		setupMocks  func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSnapshotRepository[[]model.DocumentMetadata]) io.Reader
		wantErr     error
		wantErrMsg  string
	}{
		{
			name:        "happy path",
			filename:    "GA SD 18.pdf",
			contentType: "application/pdf",
			size:        5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSnapshotRepository[[]model.DocumentMetadata]) io.Reader {
				r := strings.NewReader("%PDF-")
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".pdf")
				}), r, storage.PutObjectOptions{
					Size:        5,
					ContentType: "application/pdf",
					Metadata:    map[string]string{"original-filename": "GA SD 18.pdf"},
				}).Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
					return storage.ObjectInfo{Key: key, Size: opt.Size}
				}, nil)
				mStore.On("ObjectURL", mock.Anything).Return("http://minio:9000/pollbuilder/documents/x.pdf")
				mRepo.On("Load", ctx).Return(&repository.Snapshot[[]model.DocumentMetadata]{}, nil)
				mRepo.On("Save", ctx, mock.MatchedBy(func(s *repository.Snapshot[[]model.DocumentMetadata]) bool {
					return len(s.Data) == 1 && s.Data[0].Status == model.StatusPending && s.Version == 0
				})).Return(&repository.Snapshot[[]model.DocumentMetadata]{Version: 1}, nil)
				return r
			},
		},
		{
			name:     "validation error - nil reader",
			filename: "a.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSnapshotRepository[[]model.DocumentMetadata]) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:        "invalid file type",
			filename:    "notes.txt",
			contentType: "text/plain",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSnapshotRepository[[]model.DocumentMetadata]) io.Reader {
				return strings.NewReader("hello")
			},
			wantErr: ErrInvalidFileType,
		},
		{
			name:        "too large",
			filename:    "a.pdf",
			contentType: "application/pdf",
			size:        1 << 20,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSnapshotRepository[[]model.DocumentMetadata]) io.Reader {
				return strings.NewReader("hello")
			},
			wantErr: ErrFileTooLarge,
		},
		{
			name:        "storage error",
			filename:    "a.docx",
			contentType: docxMIME,
			size:        5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSnapshotRepository[[]model.DocumentMetadata]) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:        "metadata error with successful rollback",
			filename:    "a.pdf",
			contentType: "application/pdf",
			size:        5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSnapshotRepository[[]model.DocumentMetadata]) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mStore.On("ObjectURL", mock.Anything).Return("http://minio/x")
				mRepo.On("Load", ctx).Return(&repository.Snapshot[[]model.DocumentMetadata]{}, nil)
				mRepo.On("Save", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "metadata save failed: save snapshot: db fail",
		},
		{
			name:        "metadata error with failed rollback",
			filename:    "a.pdf",
			contentType: "application/pdf",
			size:        5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSnapshotRepository[[]model.DocumentMetadata]) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mStore.On("ObjectURL", mock.Anything).Return("http://minio/x")
				mRepo.On("Load", ctx).Return(&repository.Snapshot[[]model.DocumentMetadata]{}, nil)
				mRepo.On("Save", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockSnapshotRepository[[]model.DocumentMetadata])
			svc := NewDocumentService(DocumentDeps{Store: mStore, Repo: mRepo, MaxBytes: 1024})

			r := tt.setupMocks(mStore, mRepo)
			doc, err := svc.Upload(ctx, r, tt.filename, tt.contentType, tt.size)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)
			case tt.wantErrMsg != "":
				assert.ErrorContains(t, err, tt.wantErrMsg)
				assert.Nil(t, doc)
			default:
				require.NoError(t, err)
				assert.NotEmpty(t, doc.ID)
				assert.Equal(t, tt.filename, doc.Name)
				assert.Equal(t, model.StatusPending, doc.Status)
				assert.Equal(t, model.FileTypePDF, doc.Type)
				assert.Equal(t, "http://minio:9000/pollbuilder/documents/x.pdf", doc.URL)
				assert.True(t, strings.HasPrefix(doc.StorageKey, "documents/"))
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_UploadAppends(t *testing.T) {
	ctx := context.Background()
	existing := model.DocumentMetadata{ID: "old", Name: "old.pdf", Status: model.StatusDone}
	repo := documentsOf(existing)
	mStore := new(storeMocks.MockStorage)
	mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
			return storage.ObjectInfo{Key: key}
		}, nil)
	mStore.On("ObjectURL", mock.Anything).Return("http://minio/x")

	svc := NewDocumentService(DocumentDeps{Store: mStore, Repo: repo})
	doc, err := svc.Upload(ctx, strings.NewReader("PK"), "new.docx", "application/octet-stream", 2)
	require.NoError(t, err)

	docs := repo.Current()
	require.Len(t, docs, 2)
	assert.Equal(t, "old", docs[0].ID)
	assert.Equal(t, doc.ID, docs[1].ID)
	assert.Equal(t, model.FileTypeDOCX, docs[1].Type)
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()
	repo := documentsOf(model.DocumentMetadata{ID: "doc-1", Name: "a.pdf"})
	svc := NewDocumentService(DocumentDeps{Repo: repo})

	doc, err := svc.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", doc.Name)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, ErrIDRequired)
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	docs, err := NewDocumentService(DocumentDeps{Repo: documentsOf()}).List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)

	mRepo := new(repoMocks.MockSnapshotRepository[[]model.DocumentMetadata])
	mRepo.On("Load", ctx).Return(nil, errors.New("boom"))
	_, err = NewDocumentService(DocumentDeps{Repo: mRepo}).List(ctx)
	assert.EqualError(t, err, "load documents: boom")
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mStore *storeMocks.MockStorage)
		wantErr    error
		wantLeft   int
	}{
		{
			name: "happy path",
			id:   "doc-1",
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Delete", ctx, "documents/1.pdf").Return(nil)
			},
			wantLeft: 1,
		},
		{
			name: "storage failure is ignored",
			id:   "doc-1",
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Delete", ctx, "documents/1.pdf").Return(errors.New("gone"))
			},
			wantLeft: 1,
		},
		{
			name:       "not found",
			id:         "missing",
			setupMocks: func(mStore *storeMocks.MockStorage) {},
			wantErr:    ErrNotFound,
			wantLeft:   2,
		},
		{
			name:       "id required",
			id:         "",
			setupMocks: func(mStore *storeMocks.MockStorage) {},
			wantErr:    ErrIDRequired,
			wantLeft:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := documentsOf(
				model.DocumentMetadata{ID: "doc-1", Name: "a.pdf", StorageKey: "documents/1.pdf"},
				model.DocumentMetadata{ID: "doc-2", Name: "b.pdf", StorageKey: "documents/2.pdf"},
			)
			mStore := new(storeMocks.MockStorage)
			tt.setupMocks(mStore)
			svc := NewDocumentService(DocumentDeps{Store: mStore, Repo: repo, Logger: zerolog.Nop()})

			err := svc.Delete(ctx, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, repo.Current(), tt.wantLeft)
			mStore.AssertExpectations(t)
		})
	}
}

type processFixture struct {
	docs    *repoMocks.MemorySnapshot[[]model.DocumentMetadata]
	library *repoMocks.MemorySnapshot[model.Library]
	fetcher *fetchMocks.MockFetcher
	extr    *textMocks.MockExtractor
	reg     *prometheus.Registry
	svc     DocumentService
}

func newProcessFixture(t *testing.T, doc model.DocumentMetadata) *processFixture {
	t.Helper()
	f := &processFixture{
		docs:    documentsOf(doc),
		library: libraryOf(model.Question{ID: "other_Q1", Source: "other", Category: model.CategoryPolicy, Text: "Kept question"}),
		fetcher: new(fetchMocks.MockFetcher),
		extr:    new(textMocks.MockExtractor),
		reg:     prometheus.NewRegistry(),
	}
	pm, err := metrics.NewPipeline(f.reg)
	require.NoError(t, err)
	f.svc = NewDocumentService(DocumentDeps{
		Repo:      f.docs,
		Library:   NewLibraryService(f.library, LibraryOptions{MaxRetries: 3}),
		Fetcher:   f.fetcher,
		Extractor: f.extr,
		Metrics:   pm,
		Logger:    zerolog.Nop(),
	})
	return f
}

func TestDocumentService_Process(t *testing.T) {
	ctx := context.Background()
	doc := model.DocumentMetadata{
		ID:         "doc-1",
		Name:       "ga_sd18.pdf",
		StorageKey: "documents/1.pdf",
		UploadedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Status:     model.StatusPending,
		Type:       model.FileTypePDF,
	}

	t.Run("happy path", func(t *testing.T) {
		f := newProcessFixture(t, doc)
		f.fetcher.On("Fetch", mock.Anything, mock.MatchedBy(func(d model.DocumentMetadata) bool {
			return d.ID == "doc-1" && d.Status == model.StatusProcessing
		})).Return([]byte("%PDF"), nil)
		f.extr.On("Extract", mock.Anything, []byte("%PDF"), model.FileTypePDF).Return(instrumentText, nil)

		res, err := f.svc.Process(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, &ProcessResult{QuestionsAdded: 2, TotalQuestions: 3}, res)

		stored := f.docs.Current()[0]
		assert.Equal(t, model.StatusDone, stored.Status)
		require.NotNil(t, stored.QuestionCount)
		assert.Equal(t, 2, *stored.QuestionCount)
		assert.Empty(t, stored.Error)

		lib := f.library.Current()
		require.Len(t, lib.Questions, 3)
		assert.Equal(t, "ga_sd18_Q1", lib.Questions[1].ID)
		assert.Equal(t, "ga_sd18", lib.Questions[1].Source)

		n, err := testutil.GatherAndCount(f.reg, "pollbuilder_documents_processed_total")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		f.fetcher.AssertExpectations(t)
		f.extr.AssertExpectations(t)
	})

	t.Run("reprocessing is idempotent", func(t *testing.T) {
		f := newProcessFixture(t, doc)
		f.fetcher.On("Fetch", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)
		f.extr.On("Extract", mock.Anything, mock.Anything, mock.Anything).Return(instrumentText, nil)

		_, err := f.svc.Process(ctx, "doc-1")
		require.NoError(t, err)
		first := f.library.Current().Questions

		res, err := f.svc.Process(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, 3, res.TotalQuestions)
		assert.Equal(t, first, f.library.Current().Questions)
	})

	t.Run("no questions", func(t *testing.T) {
		f := newProcessFixture(t, doc)
		f.fetcher.On("Fetch", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)
		f.extr.On("Extract", mock.Anything, mock.Anything, mock.Anything).Return("Just a cover letter without markers.", nil)

		res, err := f.svc.Process(ctx, "doc-1")
		assert.ErrorIs(t, err, extract.ErrNoQuestions)
		assert.Nil(t, res)

		stored := f.docs.Current()[0]
		assert.Equal(t, model.StatusError, stored.Status)
		assert.Equal(t, "No questions found in document", stored.Error)
		assert.Len(t, f.library.Current().Questions, 1)
	})

	t.Run("fetch failure", func(t *testing.T) {
		f := newProcessFixture(t, doc)
		f.fetcher.On("Fetch", mock.Anything, mock.Anything).Return(nil, fetch.ErrFetch)

		_, err := f.svc.Process(ctx, "doc-1")
		assert.ErrorIs(t, err, fetch.ErrFetch)

		stored := f.docs.Current()[0]
		assert.Equal(t, model.StatusError, stored.Status)
		assert.Equal(t, "Failed to fetch document", stored.Error)
		f.extr.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error state is retried", func(t *testing.T) {
		failed := doc
		failed.Status = model.StatusError
		failed.Error = "Failed to fetch document"
		f := newProcessFixture(t, failed)
		f.fetcher.On("Fetch", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)
		f.extr.On("Extract", mock.Anything, mock.Anything, mock.Anything).Return(instrumentText, nil)

		_, err := f.svc.Process(ctx, "doc-1")
		require.NoError(t, err)
		stored := f.docs.Current()[0]
		assert.Equal(t, model.StatusDone, stored.Status)
		assert.Empty(t, stored.Error)
	})

	t.Run("not found", func(t *testing.T) {
		f := newProcessFixture(t, doc)
		_, err := f.svc.Process(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		f.fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})
}
