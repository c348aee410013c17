package uploads

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/employees"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/google/uuid"
)

const documentTypeProfilePicture = employees.DocumentTypeProfilePicture

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, object, contentType string, body io.Reader) (string, error)
}

type employeeDocuments interface {
	Exists(ctx context.Context, employeeID uuid.UUID) error
	AttachDocument(ctx context.Context, employeeID uuid.UUID, docType, url string, at time.Time) (*employees.EmployeeDTO, error)
}

// Service accepts base64 employee documents, stores them and records the URL
// on the employee.
type Service interface {
	UploadEmployeeDocument(ctx context.Context, input EmployeeDocumentInput) (*EmployeeDocumentResult, error)
}

type EmployeeDocumentInput struct {
	EmployeeID   uuid.UUID `json:"employeeId" validate:"required"`
	DocumentType string    `json:"documentType" validate:"required,max=50"`
	FileName     string    `json:"fileName" validate:"required,max=255"`
	ContentType  string    `json:"contentType" validate:"required,max=100"`
	FileData     string    `json:"fileData" validate:"required"`
}

type EmployeeDocumentResult struct {
	Key      string                `json:"key"`
	URL      string                `json:"url"`
	Employee employees.EmployeeDTO `json:"employee"`
}

type service struct {
	store     Uploader
	employees employeeDocuments
	maxBytes  int64
	now       func() time.Time
}

// NewService builds the upload service. store may be nil when object storage
// is not configured; uploads then fail with DEPENDENCY_ERROR.
func NewService(store Uploader, employees employeeDocuments, maxBytes int64) (Service, error) {
	if employees == nil {
		return nil, fmt.Errorf("employee service required")
	}
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	return &service{store: store, employees: employees, maxBytes: maxBytes, now: time.Now}, nil
}

func (s *service) UploadEmployeeDocument(ctx context.Context, input EmployeeDocumentInput) (*EmployeeDocumentResult, error) {
	if s.store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "object storage not configured")
	}

	docType := sanitizeDocumentType(input.DocumentType)
	if docType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "documentType is required")
	}
	policy := policyFor(docType)

	contentType, err := parseContentType(input.ContentType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "contentType is invalid")
	}
	if !policy.allows(contentType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("contentType must be one of %s", policy.label)).
			WithDetails(map[string]any{"allowed": policy.mimeTypes()})
	}

	data, err := s.decode(input.FileData)
	if err != nil {
		return nil, err
	}
	if !policy.admits(data) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file content does not match contentType")
	}

	if err := s.employees.Exists(ctx, input.EmployeeID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	key := fmt.Sprintf("employees/%s/%s-%d%s", input.EmployeeID, docType, now.UnixMilli(), policy.extension(input.FileName, contentType))
	url, err := s.store.Upload(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store document")
	}

	// The stored object is kept even if the employee update fails.
	employee, err := s.employees.AttachDocument(ctx, input.EmployeeID, docType, url, now)
	if err != nil {
		return nil, err
	}
	return &EmployeeDocumentResult{Key: key, URL: url, Employee: *employee}, nil
}

// decode accepts raw base64 or a data URL and enforces the size limit.
func (s *service) decode(payload string) ([]byte, error) {
	raw := strings.TrimSpace(payload)
	if idx := strings.Index(raw, ";base64,"); strings.HasPrefix(raw, "data:") && idx >= 0 {
		raw = raw[idx+len(";base64,"):]
	}
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fileData is required")
	}
	if int64(base64.StdEncoding.DecodedLen(len(raw))) > s.maxBytes+2 {
		return nil, s.tooLarge()
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "fileData must be base64")
	}
	if len(data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fileData is empty")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, s.tooLarge()
	}
	return data, nil
}

func (s *service) tooLarge() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "file exceeds upload limit").
		WithDetails(map[string]any{"maxBytes": s.maxBytes})
}
