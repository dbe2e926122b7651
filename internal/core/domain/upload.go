package domain

import "slices"

const MaxImageSize = 5 << 20

var imageContentTypes = []string{"image/png", "image/jpeg", "image/jpg"}

type (
	Image struct {
		Name        string
		ContentType string
		Data        []byte
	}

	Credentials struct {
		Username string
		Password string
	}
)

func (img Image) Validate() error {
	if len(img.Data) == 0 {
		return Invalid("no file provided")
	}
	if !slices.Contains(imageContentTypes, img.ContentType) {
		return Invalid("invalid file type, only PNG and JPG are allowed")
	}
	if len(img.Data) > MaxImageSize {
		return Invalid("file size too large, maximum 5MB allowed")
	}
	return nil
}

// Ext returns the file extension matching the content type.
func (img Image) Ext() string {
	if img.ContentType == "image/png" {
		return ".png"
	}
	return ".jpg"
}
