// Package imageref normalizes reference images (uploads, street-view captures, scan
// captures, generated results) into raw bytes plus a sniffed MIME type.
package imageref

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrEmpty         = errors.New("image payload is empty")
	ErrInvalidBase64 = errors.New("image payload is not valid base64")
	ErrNotImage      = errors.New("payload is not an image")
)

type Image struct {
	Data     []byte
	MIMEType string
}

func (i *Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

func (i *Image) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + i.Base64()
}

// Extension returns the file extension matching the sniffed type, with the leading dot.
func (i *Image) Extension() string {
	if mt := mimetype.Lookup(i.MIMEType); mt != nil {
		return mt.Extension()
	}
	return ""
}

// IsDataURL reports whether s is an inline data URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "data:")
}

// IsRemote reports whether s is an http(s) URL.
func IsRemote(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Decode accepts a data URL or a bare base64 payload.
func Decode(s string) (*Image, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmpty
	}
	if IsDataURL(s) {
		comma := strings.IndexByte(s, ',')
		if comma < 0 {
			return nil, ErrInvalidBase64
		}
		s = s[comma+1:]
	}

	data, err := decodeBase64(s)
	if err != nil {
		return nil, ErrInvalidBase64
	}
	return FromBytes(data)
}

// AsURL returns remote and data URLs unchanged and turns bare base64 into a data URL,
// the forms chat and video providers accept as image input.
func AsURL(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if IsRemote(ref) || IsDataURL(ref) {
		return ref, nil
	}
	img, err := Decode(ref)
	if err != nil {
		return "", err
	}
	return img.DataURL(), nil
}

// FromBytes sniffs the payload and rejects anything that is not an image.
func FromBytes(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, ErrNotImage
	}
	return &Image{Data: data, MIMEType: baseType(mt.String())}, nil
}

func baseType(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		return mime[:i]
	}
	return mime
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)

	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	if data, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.URLEncoding.DecodeString(s)
}
