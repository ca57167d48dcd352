package cms

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// DefaultMaxUploadBytes is the largest accepted upload (10 MiB).
const DefaultMaxUploadBytes int64 = 10 << 20

// DefaultFolder is the asset host folder uploads are placed in.
const DefaultFolder = "antigravity-cms"

// Extensions accepted per upload class. The mime type must carry the
// matching image/ or video/ prefix as well.
var (
	allowedImageExt = map[string]bool{"jpeg": true, "jpg": true, "png": true, "gif": true, "webp": true}
	allowedVideoExt = map[string]bool{"mp4": true, "mov": true, "webm": true}
)

// ClassifyUpload checks a file name and mime type against the upload
// allow-list and returns the resulting file type.
func ClassifyUpload(fileName, mimeType string) (FileType, error) {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(fileName)), ".")
	mimeType = strings.ToLower(mimeType)

	fileType := fileTypeFromMime(mimeType)
	switch {
	case fileType == FileTypeImage && allowedImageExt[ext]:
		return fileType, nil
	case fileType == FileTypeVideo && allowedVideoExt[ext]:
		return fileType, nil
	}
	return "", ErrUnsupportedMedia
}

// fileTypeFromMime classifies by mime prefix alone.
func fileTypeFromMime(mimeType string) FileType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return FileTypeImage
	case strings.HasPrefix(mimeType, "video/"):
		return FileTypeVideo
	}
	return FileTypeDocument
}

// assetKey builds a sharded host key:
// <folder>/<ab>/<rest-of-id>_<name>
func assetKey(folder string, id uuid.UUID, fileName string) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	name := sanitizeFileName(fileName)
	key := fmt.Sprintf("%s/%s_%s", hex[:2], hex[2:], name)
	if folder = strings.Trim(folder, "/"); folder != "" {
		key = folder + "/" + key
	}
	return key
}

// sanitizeFileName slugs the base name and keeps a lowercase extension.
func sanitizeFileName(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	base := GenerateSlug(strings.TrimSuffix(path.Base(fileName), path.Ext(fileName)))
	if base == "" {
		base = "file"
	}
	if len(base) > 100 {
		base = strings.TrimRight(base[:100], "-")
	}
	return base + ext
}

func replaceExt(fileName, ext string) string {
	return strings.TrimSuffix(fileName, path.Ext(fileName)) + ext
}
