package valueobjects

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileKind classifies a request attachment.
type FileKind string

const FileKindAttachment FileKind = "attachment"

const DefaultMaxAttachmentBytes int64 = 10 << 20

// DefaultAllowedExtensions are the document types the public form accepts.
var DefaultAllowedExtensions = []string{"pdf", "doc", "docx", "xls", "xlsx"}

// AttachmentPolicy bounds which uploads are accepted.
type AttachmentPolicy struct {
	MaxBytes          int64
	AllowedExtensions []string
}

func DefaultAttachmentPolicy() AttachmentPolicy {
	return AttachmentPolicy{
		MaxBytes:          DefaultMaxAttachmentBytes,
		AllowedExtensions: DefaultAllowedExtensions,
	}
}

// Check validates name and size against the policy.
func (p AttachmentPolicy) Check(name string, size int64) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" || !p.allows(ext) {
		return fmt.Errorf("file %q: extension not allowed (allowed: %s)", name, strings.Join(p.AllowedExtensions, ", "))
	}
	if size <= 0 {
		return fmt.Errorf("file %q is empty", name)
	}
	if p.MaxBytes > 0 && size > p.MaxBytes {
		return fmt.Errorf("file %q exceeds %d MB", name, p.MaxBytes>>20)
	}
	return nil
}

func (p AttachmentPolicy) allows(ext string) bool {
	for _, allowed := range p.AllowedExtensions {
		if strings.EqualFold(strings.TrimPrefix(allowed, "."), ext) {
			return true
		}
	}
	return false
}
