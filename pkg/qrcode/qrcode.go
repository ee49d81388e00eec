package qrcode

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	ErrEmptyContent   = errors.New("qrcode: content cannot be empty")
	ErrFailedGenerate = errors.New("qrcode: failed to generate")
)

const defaultSize = 256

// Generate renders content as a PNG of size x size pixels.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedGenerate, err)
	}
	return png, nil
}

// DataURI renders content as a data:image/png;base64 URI for inline <img> tags.
func DataURI(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// Handler serves a fixed QR code. The image is rendered on first request and
// reused afterwards.
func Handler(content string, size int) http.Handler {
	var (
		once sync.Once
		png  []byte
		err  error
	)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { png, err = Generate(content, size) })
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = w.Write(png)
	})
}
