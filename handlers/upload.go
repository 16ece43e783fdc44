package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"hospedajes/config"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// sanitizeFilename reduces an uploaded filename to a single safe path
// component. Directory parts are stripped, anything outside a conservative
// character set becomes an underscore, and leading dots are removed so the
// result can never escape the upload directory or hide as a dotfile. An empty
// string means the name was unusable.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	return name
}

// saveUpload stores the "imagen" form file under the upload directory and
// returns its sanitized filename. A missing file, an empty filename or a
// non-multipart form all mean "no upload" and return "" without error. A
// later upload with the same sanitized name overwrites the earlier file.
func saveUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("imagen")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if filename == "" {
		return "", nil
	}

	dst, err := os.Create(filepath.Join(config.AppConfig.UploadDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return filename, nil
}
