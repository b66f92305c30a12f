package employee

import (
	"io"
	"path/filepath"
	"strings"

	employeeerrors "hris-admin/internal/employee/errors"

	"github.com/gabriel-vasile/mimetype"
)

const (
	AnonymousPhoto = "anonymous.png"
	MaxPhotoSize   = 5 << 20
)

// PhotoURL points at the stored photo, or at the anonymous placeholder when
// the employee has none.
func PhotoURL(base, imageName string) string {
	name := strings.TrimSpace(imageName)
	if name == "" {
		name = AnonymousPhoto
	}
	return strings.TrimRight(base, "/") + "/" + name
}

// readPhoto buffers an upload and checks that its content really is an
// image, whatever the client claimed.
func readPhoto(content io.Reader) ([]byte, *mimetype.MIME, error) {
	data, err := io.ReadAll(io.LimitReader(content, MaxPhotoSize+1))
	if err != nil {
		return nil, nil, err
	}
	if len(data) == 0 {
		return nil, nil, employeeerrors.ErrPhotoRequired
	}
	if len(data) > MaxPhotoSize {
		return nil, nil, employeeerrors.ErrPhotoTooLarge
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, nil, employeeerrors.ErrUnsupportedPhoto
	}
	return data, mtype, nil
}

// photoFilename keeps the client's name but makes sure it carries an
// extension matching the sniffed content.
func photoFilename(filename string, mtype *mimetype.MIME) string {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == "/" || name == "" {
		name = "photo"
	}
	if filepath.Ext(name) == "" {
		name += mtype.Extension()
	}
	return name
}
