package uploads

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/employees"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/google/uuid"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	pdfBytes = []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n")
)

type stubUploader struct {
	objects     map[string][]byte
	contentType string
	err         error
}

func (s *stubUploader) Upload(_ context.Context, object, contentType string, body io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[object] = data
	s.contentType = contentType
	return "https://storage.example.com/employee-documents/" + object, nil
}

type stubEmployees struct {
	missing   bool
	attachErr error
	docType   string
	url       string
}

func (s *stubEmployees) Exists(context.Context, uuid.UUID) error {
	if s.missing {
		return pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
	}
	return nil
}

func (s *stubEmployees) AttachDocument(_ context.Context, id uuid.UUID, docType, url string, _ time.Time) (*employees.EmployeeDTO, error) {
	if s.attachErr != nil {
		return nil, s.attachErr
	}
	s.docType = docType
	s.url = url
	return &employees.EmployeeDTO{ID: id}, nil
}

func newTestService(t *testing.T, store Uploader, emps *stubEmployees, maxBytes int64) *service {
	t.Helper()
	svc, err := NewService(store, emps, maxBytes)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	impl := svc.(*service)
	impl.now = func() time.Time { return time.UnixMilli(1760000000000) }
	return impl
}

func TestUploadIDDocument(t *testing.T) {
	store := &stubUploader{}
	emps := &stubEmployees{}
	svc := newTestService(t, store, emps, 1024)
	employeeID := uuid.New()

	res, err := svc.UploadEmployeeDocument(context.Background(), EmployeeDocumentInput{
		EmployeeID:   employeeID,
		DocumentType: "Drivers License",
		FileName:     "scan.PDF",
		ContentType:  "application/pdf",
		FileData:     base64.StdEncoding.EncodeToString(pdfBytes),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	wantKey := "employees/" + employeeID.String() + "/drivers_license-1760000000000.pdf"
	if res.Key != wantKey {
		t.Fatalf("expected key %s got %s", wantKey, res.Key)
	}
	if !strings.HasSuffix(res.URL, wantKey) || emps.url != res.URL {
		t.Fatalf("unexpected url %s (attached %s)", res.URL, emps.url)
	}
	if emps.docType != "drivers_license" {
		t.Fatalf("unexpected doc type %s", emps.docType)
	}
	if string(store.objects[wantKey]) != string(pdfBytes) || store.contentType != "application/pdf" {
		t.Fatalf("object not stored as sent")
	}
}

func TestUploadProfilePictureFromDataURL(t *testing.T) {
	store := &stubUploader{}
	emps := &stubEmployees{}
	svc := newTestService(t, store, emps, 1024)

	res, err := svc.UploadEmployeeDocument(context.Background(), EmployeeDocumentInput{
		EmployeeID:   uuid.New(),
		DocumentType: "profile_picture",
		FileName:     "me",
		ContentType:  "image/png",
		FileData:     "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasSuffix(res.Key, "/profile_picture-1760000000000.png") {
		t.Fatalf("unexpected key %s", res.Key)
	}
	if emps.docType != documentTypeProfilePicture {
		t.Fatalf("expected profile picture routing, got %s", emps.docType)
	}
}

func TestUploadRejections(t *testing.T) {
	big := make([]byte, 2048)
	copy(big, pdfBytes)

	cases := []struct {
		name  string
		input EmployeeDocumentInput
		code  pkgerrors.Code
	}{
		{
			name:  "profile picture must be an image",
			input: EmployeeDocumentInput{DocumentType: "profile_picture", FileName: "a.pdf", ContentType: "application/pdf", FileData: base64.StdEncoding.EncodeToString(pdfBytes)},
			code:  pkgerrors.CodeValidation,
		},
		{
			name:  "unsupported type",
			input: EmployeeDocumentInput{DocumentType: "license", FileName: "a.exe", ContentType: "application/x-msdownload", FileData: "AAAA"},
			code:  pkgerrors.CodeValidation,
		},
		{
			name:  "over the limit",
			input: EmployeeDocumentInput{DocumentType: "license", FileName: "a.pdf", ContentType: "application/pdf", FileData: base64.StdEncoding.EncodeToString(big)},
			code:  pkgerrors.CodeValidation,
		},
		{
			name:  "not base64",
			input: EmployeeDocumentInput{DocumentType: "license", FileName: "a.pdf", ContentType: "application/pdf", FileData: "%%%not-base64%%%"},
			code:  pkgerrors.CodeValidation,
		},
		{
			name:  "content disagrees with declared type",
			input: EmployeeDocumentInput{DocumentType: "license", FileName: "a.png", ContentType: "image/png", FileData: base64.StdEncoding.EncodeToString([]byte("<html><body>hi</body></html>"))},
			code:  pkgerrors.CodeValidation,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubUploader{}
			svc := newTestService(t, store, &stubEmployees{}, 1024)
			tc.input.EmployeeID = uuid.New()
			_, err := svc.UploadEmployeeDocument(context.Background(), tc.input)
			if !pkgerrors.IsCode(err, tc.code) {
				t.Fatalf("expected %s got %v", tc.code, err)
			}
			if len(store.objects) != 0 {
				t.Fatalf("nothing should be stored")
			}
		})
	}
}

func TestUploadWithoutStorage(t *testing.T) {
	svc := newTestService(t, nil, &stubEmployees{}, 1024)
	_, err := svc.UploadEmployeeDocument(context.Background(), EmployeeDocumentInput{
		EmployeeID: uuid.New(), DocumentType: "license", FileName: "a.pdf", ContentType: "application/pdf",
		FileData: base64.StdEncoding.EncodeToString(pdfBytes),
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestUploadUnknownEmployee(t *testing.T) {
	store := &stubUploader{}
	svc := newTestService(t, store, &stubEmployees{missing: true}, 1024)
	_, err := svc.UploadEmployeeDocument(context.Background(), EmployeeDocumentInput{
		EmployeeID: uuid.New(), DocumentType: "license", FileName: "a.pdf", ContentType: "application/pdf",
		FileData: base64.StdEncoding.EncodeToString(pdfBytes),
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatalf("nothing should be stored for a missing employee")
	}
}

func TestStoredObjectKeptWhenAttachFails(t *testing.T) {
	store := &stubUploader{}
	attachErr := pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("db down"), "employee not found")
	svc := newTestService(t, store, &stubEmployees{attachErr: attachErr}, 1024)
	_, err := svc.UploadEmployeeDocument(context.Background(), EmployeeDocumentInput{
		EmployeeID: uuid.New(), DocumentType: "license", FileName: "a.pdf", ContentType: "application/pdf",
		FileData: base64.StdEncoding.EncodeToString(pdfBytes),
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("expected attach error, got %v", err)
	}
	if len(store.objects) != 1 {
		t.Fatalf("expected stored object to remain, got %d", len(store.objects))
	}
}

func TestUploadStoreFailure(t *testing.T) {
	svc := newTestService(t, &stubUploader{err: errors.New("503")}, &stubEmployees{}, 1024)
	_, err := svc.UploadEmployeeDocument(context.Background(), EmployeeDocumentInput{
		EmployeeID: uuid.New(), DocumentType: "license", FileName: "a.pdf", ContentType: "application/pdf",
		FileData: base64.StdEncoding.EncodeToString(pdfBytes),
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
