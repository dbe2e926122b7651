package httphandler

import (
	"errors"
	"io"
	"net/http"

	"github.com/niksmo/fashion-store/internal/core/domain"
)

const (
	uploadField    = "file"
	multipartSlack = 1 << 20
)

// readImage reads the multipart file field. Size and type checks
// are left to [domain.Image.Validate].
func readImage(w http.ResponseWriter, r *http.Request) (domain.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxImageSize+multipartSlack)

	f, hdr, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.Image{}, domain.Invalid("file size too large, maximum 5MB allowed")
		}
		return domain.Image{}, domain.Invalid("no file provided")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, domain.MaxImageSize+1))
	if err != nil {
		return domain.Image{}, domain.Invalid("failed to read file")
	}

	ct := hdr.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}

	return domain.Image{Name: hdr.Filename, ContentType: ct, Data: data}, nil
}
