package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hospedajes/config"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"foto.jpg", "foto.jpg"},
		{"mi foto.jpg", "mi_foto.jpg"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\windows\\system32", "system32"},
		{"/absolute/path/img.png", "img.png"},
		{".htaccess", "htaccess"},
		{"ñandú.png", "_and_.png"},
		{"..", ""},
		{".", ""},
		{"", ""},
	}

	for _, c := range cases {
		if got := sanitizeFilename(c.in); got != c.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSaveUploadNoFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("nombre", "sin imagen")
	mw.Close()

	req := httptest.NewRequest("POST", "/nuevo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	filename, err := saveUpload(req)
	if err != nil {
		t.Fatalf("saveUpload returned error for missing file: %v", err)
	}
	if filename != "" {
		t.Errorf("Expected empty filename for missing file, got %q", filename)
	}
}

func TestSaveUploadNonMultipart(t *testing.T) {
	req := httptest.NewRequest("POST", "/nuevo", strings.NewReader("nombre=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	filename, err := saveUpload(req)
	if err != nil || filename != "" {
		t.Errorf("Expected no-upload for urlencoded form, got %q, %v", filename, err)
	}
}

func TestSaveUploadWritesFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("imagen", "playa norte.jpg")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("imagen-bytes"))
	mw.Close()

	req := httptest.NewRequest("POST", "/nuevo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	filename, err := saveUpload(req)
	if err != nil {
		t.Fatalf("saveUpload failed: %v", err)
	}
	if filename != "playa_norte.jpg" {
		t.Errorf("Expected sanitized name 'playa_norte.jpg', got %q", filename)
	}

	data, err := os.ReadFile(filepath.Join(config.AppConfig.UploadDir, filename))
	if err != nil {
		t.Fatalf("Saved file unreadable: %v", err)
	}
	if string(data) != "imagen-bytes" {
		t.Errorf("Saved file content mismatch: %q", data)
	}
}
