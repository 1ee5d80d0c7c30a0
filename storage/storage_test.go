package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

var allowedExtensions = []string{"png", "jpg", "jpeg", "gif", "pdf", "doc", "docx", "mp4"}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir(), allowedExtensions)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return store
}

func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("evidence", filename)
	if err != nil {
		t.Fatalf("CreateFormFile returned error: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, fh, err := req.FormFile("evidence")
	if err != nil {
		t.Fatalf("FormFile returned error: %v", err)
	}
	return fh
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"../../etc/passwd.png", "passwd.png"},
		{`..\..\windows\system32\evil.jpg`, "evil.jpg"},
		{"my report (final).pdf", "my_report__final_.pdf"},
		{"résumé.pdf", "r_sum_.pdf"},
		{"...", "file"},
		{"", "file"},
	}

	for _, tt := range tests {
		got := SanitizeFilename(tt.in)
		if got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if strings.ContainsAny(got, `/\`) {
			t.Errorf("SanitizeFilename(%q) = %q still contains a path separator", tt.in, got)
		}
	}
}

func TestAllowed(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		filename string
		want     bool
	}{
		{"photo.png", true},
		{"photo.PNG", true},
		{"scan.Pdf", true},
		{"clip.mp4", true},
		{"malware.exe", false},
		{"noextension", false},
		{"", false},
		{"archive.tar.gz", false},
	}

	for _, tt := range tests {
		if got := store.Allowed(tt.filename); got != tt.want {
			t.Errorf("Allowed(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestSaveSanitizesAndSuffixes(t *testing.T) {
	store := newTestStore(t)

	evidence, err := store.Save(uploadHeader(t, "../../etc/passwd.png", "not really a png"))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if strings.ContainsAny(evidence.Filename, `/\`) {
		t.Errorf("stored filename %q contains a path separator", evidence.Filename)
	}
	if evidence.OriginalFilename != "passwd.png" {
		t.Errorf("original filename = %q, want passwd.png", evidence.OriginalFilename)
	}
	if !strings.HasPrefix(evidence.Filename, "passwd_") || !strings.HasSuffix(evidence.Filename, ".png") {
		t.Errorf("stored filename %q missing suffix or extension", evidence.Filename)
	}
	if evidence.FileType != "png" {
		t.Errorf("file type = %q, want png", evidence.FileType)
	}
	if evidence.FileSize != int64(len("not really a png")) {
		t.Errorf("file size = %d, want %d", evidence.FileSize, len("not really a png"))
	}
	if !store.Exists(evidence.Filename) {
		t.Errorf("stored file %q not found on disk", evidence.Filename)
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save(uploadHeader(t, "photo.jpg", "one"))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	second, err := store.Save(uploadHeader(t, "photo.jpg", "two"))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if first.Filename == second.Filename {
		t.Errorf("two uploads of the same name stored as %q twice", first.Filename)
	}
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	evidence, err := store.Save(uploadHeader(t, "photo.jpg", "content"))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := store.Remove(evidence.Filename); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if store.Exists(evidence.Filename) {
		t.Errorf("file %q still present after Remove", evidence.Filename)
	}

	// A missing file is tolerated.
	if err := store.Remove("never-existed.png"); err != nil {
		t.Errorf("Remove of missing file returned error: %v", err)
	}
}

func TestPathStaysInsideStore(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, allowedExtensions)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	path := store.Path("../../etc/passwd")
	if !strings.HasPrefix(path, dir+string(os.PathSeparator)) {
		t.Errorf("Path escaped the store directory: %q", path)
	}
}
