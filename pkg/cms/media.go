package cms

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/imaging"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/metrics"
)

// UploadMedia runs the ingest pipeline: allow-list check, image
// optimisation, upload to the asset host and finally the store write. No
// record is written unless the host upload succeeded.
func (s *service) UploadMedia(ctx context.Context, req UploadMediaRequest) (*MediaAsset, error) {
	if s.assetHost == nil {
		return nil, ErrNoAssetHost
	}
	if req.Body == nil {
		return nil, NewValidationError("file", "No file uploaded")
	}

	fileType, err := ClassifyUpload(req.FileName, req.MimeType)
	if err != nil {
		return nil, err
	}
	if req.Size > s.maxUploadBytes {
		return nil, ErrUploadTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(req.Body, s.maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, ErrUploadTooLarge
	}

	id := uuid.New()
	mimeType := strings.ToLower(req.MimeType)
	hostName := req.FileName
	var width, height *int

	if fileType == FileTypeImage {
		res, err := imaging.Optimize(bytes.NewReader(data), s.imageOptions)
		if err != nil {
			s.recordUpload(fileType, metrics.ResultFailure)
			return nil, &MediaError{MediaID: id, Op: "optimize", Err: fmt.Errorf("%w: %v", ErrInvalidImage, err)}
		}
		data = res.Data
		mimeType = "image/jpeg"
		hostName = replaceExt(req.FileName, ".jpg")
		width, height = &res.Width, &res.Height
	}

	key := assetKey(s.folder, id, hostName)
	hosted, err := s.assetHost.Upload(ctx, bytes.NewReader(data), UploadParams{
		ObjectKey:    key,
		MimeType:     mimeType,
		ResourceType: fileType,
		Size:         int64(len(data)),
	})
	if err != nil {
		s.recordUpload(fileType, metrics.ResultFailure)
		return nil, &HostError{Host: s.assetHost.Name(), Key: key, Op: "upload", Err: err}
	}
	metrics.MediaUploadBytes.WithLabelValues(string(fileType)).Observe(float64(hosted.Bytes))

	now := s.now()
	asset := &MediaAsset{
		ID:        id,
		FileName:  req.FileName,
		FileURL:   hosted.URL,
		PublicID:  hosted.PublicID,
		FileType:  fileType,
		MimeType:  mimeType,
		FileSize:  hosted.Bytes,
		Width:     width,
		Height:    height,
		Alt:       strings.TrimSpace(req.Alt),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repository.CreateMedia(ctx, asset); err != nil {
		s.recordUpload(fileType, metrics.ResultFailure)
		s.deleteHosted(ctx, asset)
		return nil, &MediaError{MediaID: id, Op: "create", Err: err}
	}
	s.recordUpload(fileType, metrics.ResultSuccess)

	return asset, nil
}

func (s *service) recordUpload(fileType FileType, result string) {
	metrics.MediaUploadsTotal.WithLabelValues(string(fileType), result).Inc()
}

func (s *service) GetMedia(ctx context.Context, id uuid.UUID) (*MediaAsset, error) {
	asset, err := s.repository.GetMedia(ctx, id)
	if err != nil {
		return nil, &MediaError{MediaID: id, Op: "get", Err: err}
	}
	return asset, nil
}

// UpdateMediaAlt changes the alt text, the only mutable attribute of an asset.
func (s *service) UpdateMediaAlt(ctx context.Context, id uuid.UUID, alt string) (*MediaAsset, error) {
	asset, err := s.repository.GetMedia(ctx, id)
	if err != nil {
		return nil, &MediaError{MediaID: id, Op: "update", Err: err}
	}

	asset.Alt = strings.TrimSpace(alt)
	asset.UpdatedAt = s.now()
	if err := s.repository.UpdateMedia(ctx, asset); err != nil {
		return nil, &MediaError{MediaID: id, Op: "update", Err: err}
	}
	return asset, nil
}

// DeleteMedia removes the hosted binary on a best-effort basis and then
// deletes the record regardless of the host outcome.
func (s *service) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	asset, err := s.repository.GetMedia(ctx, id)
	if err != nil {
		return &MediaError{MediaID: id, Op: "delete", Err: err}
	}

	s.deleteHosted(ctx, asset)

	if err := s.repository.DeleteMedia(ctx, id); err != nil {
		return &MediaError{MediaID: id, Op: "delete", Err: err}
	}
	return nil
}

func (s *service) deleteHosted(ctx context.Context, asset *MediaAsset) {
	if asset.PublicID == "" || s.assetHost == nil {
		return
	}
	if err := s.assetHost.Delete(ctx, asset.PublicID); err != nil {
		metrics.AssetHostDeleteFailures.Inc()
		slog.Error("Failed to delete asset from host",
			"host", s.assetHost.Name(), "public_id", asset.PublicID, "media_id", asset.ID, "error", err)
	}
}

func (s *service) ListMedia(ctx context.Context, req ListMediaRequest) (*Page[*MediaAsset], error) {
	switch req.FileType {
	case "", FileTypeImage, FileTypeVideo, FileTypeDocument:
	default:
		return nil, NewValidationError("type", "Type must be one of image, video, document")
	}

	params := normalizePage(req.Page, req.Limit, DefaultMediaLimit, s.maxLimit)
	assets, total, err := s.repository.ListMedia(ctx, MediaFilter{FileType: req.FileType}, params)
	if err != nil {
		return nil, err
	}
	return newPage(assets, total, params), nil
}
