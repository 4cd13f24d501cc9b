package upload

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"regexp"
	"testing"

	"clabs.com/website/internal/entity"
	"clabs.com/website/internal/modules/upload/repository"
	"clabs.com/website/internal/testutil"
	"clabs.com/website/pkg/apperror"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fileHeader builds a parsed multipart file the way gin hands it to handlers.
func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/api/upload/image", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	return req.MultipartForm.File["image"][0]
}

func newTestService(t *testing.T) (UploadService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	repo := repository.NewUploadRepository(db)
	return NewUploadService(repo, repository.NewDatabaseStorage(repo), zap.NewNop()), db
}

func TestUploadRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x00, 0xff, 0x7f}, 20000)...)
	res, err := svc.UploadImage(ctx, fileHeader(t, "Logo.PNG", "image/png", png))
	if err != nil {
		t.Fatalf("UploadImage() error = %v", err)
	}

	if !regexp.MustCompile(`^\d{13}_[0-9a-f]{13}\.png$`).MatchString(res.FileName) {
		t.Errorf("unexpected filename %q", res.FileName)
	}
	if res.URL != "/api/image/"+res.FileName {
		t.Errorf("URL = %q", res.URL)
	}
	if res.Size != int64(len(png)) || res.Type != "image/png" {
		t.Errorf("size/type = %d/%s", res.Size, res.Type)
	}

	obj, err := svc.FetchImage(ctx, res.FileName)
	if err != nil {
		t.Fatalf("FetchImage() error = %v", err)
	}
	if !bytes.Equal(obj.Data, png) {
		t.Fatal("fetched bytes differ from upload")
	}
	if obj.ContentType != "image/png" {
		t.Errorf("ContentType = %q", obj.ContentType)
	}
}

func TestUploadRejectsBeforeStoring(t *testing.T) {
	svc, db := newTestService(t)

	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int
	}{
		{"pdf", "file.pdf", "application/pdf", 10},
		{"svg", "file.svg", "image/svg+xml", 10},
		{"text", "notes.txt", "text/plain", 10},
		{"octet stream", "file.bin", "application/octet-stream", 10},
		{"too large", "big.jpg", "image/jpeg", MaxImageSize + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadImage(context.Background(), fileHeader(t, tt.filename, tt.contentType, make([]byte, tt.size)))
			if !errors.Is(err, apperror.ErrBadRequest) {
				t.Fatalf("UploadImage() error = %v, want bad request", err)
			}
		})
	}

	var count int64
	db.Model(&entity.UploadedImage{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected uploads stored %d rows", count)
	}
}

func TestUploadAcceptsExactLimit(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.UploadImage(context.Background(), fileHeader(t, "big.webp", "image/webp", make([]byte, MaxImageSize))); err != nil {
		t.Fatalf("UploadImage() at the limit error = %v", err)
	}
}

func TestExtensionFallback(t *testing.T) {
	svc, _ := newTestService(t)
	for name, want := range map[string]string{
		"noext":        ".jpg",
		"photo.GIF":    ".gif",
		"weird.p%2fng": ".jpg",
	} {
		res, err := svc.UploadImage(context.Background(), fileHeader(t, name, "image/gif", []byte("GIF89a")))
		if err != nil {
			t.Fatalf("UploadImage(%q) error = %v", name, err)
		}
		if got := res.FileName[len(res.FileName)-len(want):]; got != want {
			t.Errorf("UploadImage(%q) filename %q, want suffix %q", name, res.FileName, want)
		}
	}
}

func TestFetchMissingAndCorrupt(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	if _, err := svc.FetchImage(ctx, "nope.png"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("missing image: error = %v", err)
	}

	db.Create(&entity.UploadedImage{
		Filename:   "broken.png",
		FileSize:   3,
		FileType:   "image/png",
		Base64Data: "%%% not base64 %%%",
	})
	if _, err := svc.FetchImage(ctx, "broken.png"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("corrupt image: error = %v", err)
	}
}

func TestListAndDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.UploadImage(ctx, fileHeader(t, "a.png", "image/png", []byte("a")))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UploadImage(ctx, fileHeader(t, "b.png", "image/png", []byte("b"))); err != nil {
		t.Fatal(err)
	}

	list, err := svc.ListRecent(ctx, 50)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListRecent() len = %d", len(list))
	}
	if list[0].OriginalName != "b.png" {
		t.Errorf("newest first: got %q", list[0].OriginalName)
	}

	var id uint
	for _, item := range list {
		if item.Filename == first.FileName {
			id = item.ID
		}
	}
	if err := svc.DeleteUpload(ctx, id); err != nil {
		t.Fatalf("DeleteUpload() error = %v", err)
	}
	if err := svc.DeleteUpload(ctx, id); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("second DeleteUpload() error = %v, want not found", err)
	}
	if _, err := svc.FetchImage(ctx, first.FileName); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatal("deleted image still fetchable")
	}

	count, _ := svc.Count(ctx)
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}
