// Package receipts stores expense receipt attachments on the local filesystem
// and serves them back under a static URL prefix.
package receipts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// MaxUploadBytes is the largest upload accepted before any downscaling.
const MaxUploadBytes = 10 << 20

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".pdf":  true,
}

// LocalStore writes receipts to dir/<owner>/<file> and addresses them as
// baseURL/<owner>/<file>. Images above maxBytes are downscaled before writing.
type LocalStore struct {
	dir      string
	baseURL  string
	maxBytes int64
	logger   *slog.Logger
}

// NewLocalStore creates dir if needed. A non-positive maxBytes disables downscaling.
func NewLocalStore(dir, baseURL string, maxBytes int64, logger *slog.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create receipts dir %s: %w", dir, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalStore{
		dir:      dir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		logger:   logger,
	}, nil
}

var _ portsrepo.ReceiptStore = (*LocalStore)(nil)

// Dir is the root directory served under the base URL.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(ctx context.Context, ownerID, expenseID, filename string, body io.Reader) (*portsrepo.StoredObject, error) {
	if !safeSegment(ownerID) || !safeSegment(expenseID) {
		return nil, fmt.Errorf("%w: invalid receipt path", apperrors.ErrValidation)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: unsupported receipt type %q", apperrors.ErrValidation, ext)
	}

	data, err := io.ReadAll(io.LimitReader(body, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read receipt upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: receipt file is empty", apperrors.ErrValidation)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("%w: receipt exceeds %d bytes", apperrors.ErrValidation, MaxUploadBytes)
	}
	if ext != ".pdf" && s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		data = s.downscale(ctx, data, ext)
	}

	name := expenseID + "-" + uuid.NewString()[:8] + ext
	ownerDir := filepath.Join(s.dir, ownerID)
	if err := os.MkdirAll(ownerDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create receipt dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(ownerDir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write receipt: %w", err)
	}
	return &portsrepo.StoredObject{
		URL:       s.baseURL + "/" + ownerID + "/" + name,
		SizeBytes: int64(len(data)),
	}, nil
}

// downscale shrinks an image towards maxBytes. Size roughly tracks area, so
// the first pass scales each side by sqrt(max/current); a second uniform 80%
// pass runs if that was not enough. Undecodable input is returned unchanged.
func (s *LocalStore) downscale(ctx context.Context, data []byte, ext string) []byte {
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return data
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		s.logger.WarnContext(ctx, "Receipt image could not be decoded, storing as uploaded", slog.String("error", err.Error()))
		return data
	}

	scale := math.Sqrt(float64(s.maxBytes) / float64(len(data)))
	scale = math.Max(0.1, math.Min(scale, 0.95))
	w := int(math.Max(1, math.Round(float64(img.Bounds().Dx())*scale)))
	h := int(math.Max(1, math.Round(float64(img.Bounds().Dy())*scale)))
	resized := imaging.Resize(img, w, h, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		s.logger.WarnContext(ctx, "Receipt image could not be re-encoded, storing as uploaded", slog.String("error", err.Error()))
		return data
	}
	if int64(buf.Len()) > s.maxBytes {
		second := imaging.Resize(resized, int(float64(resized.Bounds().Dx())*0.8), 0, imaging.Lanczos)
		var again bytes.Buffer
		if err := imaging.Encode(&again, second, format, imaging.JPEGQuality(80)); err == nil {
			buf = again
		}
	}
	s.logger.DebugContext(ctx, "Receipt image downscaled",
		slog.Int("original_bytes", len(data)),
		slog.Int("stored_bytes", buf.Len()))
	return buf.Bytes()
}

// Delete removes the file behind url. Missing files are not an error.
func (s *LocalStore) Delete(_ context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return fmt.Errorf("%w: receipt url %q is not served by this store", apperrors.ErrValidation, url)
	}
	parts := strings.Split(rel, "/")
	for _, p := range parts {
		if !safeSegment(p) {
			return fmt.Errorf("%w: invalid receipt url %q", apperrors.ErrValidation, url)
		}
	}
	err := os.Remove(filepath.Join(append([]string{s.dir}, parts...)...))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	return nil
}

func safeSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}
