package validation

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ValidateContent Content-Type, boyut ve boş body kontrolü yapar.
// Body okunduktan sonra handler için yerine konur.
func ValidateContent(r *http.Request, config *Config) error {
	if r.ContentLength > config.MaxBodySize {
		return fmt.Errorf("request body çok büyük. Maksimum boyut: %d bytes", config.MaxBodySize)
	}

	if err := validateContentType(r, config.ContentTypes); err != nil {
		return err
	}

	if r.Body == nil {
		return fmt.Errorf("request body gerekli")
	}

	// Content-Length yalan söyleyebilir (chunked); okurken de sınırla
	bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, config.MaxBodySize+1))
	if err != nil {
		return fmt.Errorf("request body okunamadı: %w", err)
	}
	if int64(len(bodyBytes)) > config.MaxBodySize {
		return fmt.Errorf("request body çok büyük. Maksimum boyut: %d bytes", config.MaxBodySize)
	}
	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return fmt.Errorf("request body boş olamaz")
	}

	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	return nil
}

// validateContentType content type'ı doğrular; header yoksa JSON kabul edilir
func validateContentType(r *http.Request, allowedTypes []string) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil
	}

	// charset parametresi olabilir
	for _, allowedType := range allowedTypes {
		if strings.HasPrefix(contentType, allowedType) {
			return nil
		}
	}

	return fmt.Errorf("desteklenmeyen Content-Type: %s. İzin verilen tipler: %s",
		contentType, strings.Join(allowedTypes, ", "))
}
