package receipts

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noisePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newStore(t *testing.T, maxBytes int64) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), "/receipts/", maxBytes, nil)
	require.NoError(t, err)
	return store
}

func TestLocalStore_SaveSmallFileUnchanged(t *testing.T) {
	store := newStore(t, 1_000_000)
	body := []byte("%PDF-1.4 receipt")

	obj, err := store.Save(context.Background(), "owner-1", "exp-1", "bill.PDF", bytes.NewReader(body))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(obj.URL, "/receipts/owner-1/exp-1-"))
	assert.True(t, strings.HasSuffix(obj.URL, ".pdf"))
	assert.Equal(t, int64(len(body)), obj.SizeBytes)

	stored, err := os.ReadFile(filepath.Join(store.Dir(), "owner-1", filepath.Base(obj.URL)))
	require.NoError(t, err)
	assert.Equal(t, body, stored)
}

func TestLocalStore_SaveDownscalesLargeImage(t *testing.T) {
	original := noisePNG(t, 300, 300)
	store := newStore(t, int64(len(original)/4))

	obj, err := store.Save(context.Background(), "owner-1", "exp-1", "receipt.png", bytes.NewReader(original))
	require.NoError(t, err)
	assert.Less(t, obj.SizeBytes, int64(len(original)))

	img, err := imaging.Open(filepath.Join(store.Dir(), "owner-1", filepath.Base(obj.URL)))
	require.NoError(t, err)
	assert.Less(t, img.Bounds().Dx(), 300)
	assert.Less(t, img.Bounds().Dy(), 300)
}

func TestLocalStore_SaveRejectsBadInput(t *testing.T) {
	store := newStore(t, 0)
	ctx := context.Background()

	_, err := store.Save(ctx, "owner-1", "exp-1", "script.exe", strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = store.Save(ctx, "owner-1", "exp-1", "empty.png", strings.NewReader(""))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = store.Save(ctx, "../escape", "exp-1", "a.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLocalStore_Delete(t *testing.T) {
	store := newStore(t, 0)
	ctx := context.Background()

	obj, err := store.Save(ctx, "owner-1", "exp-1", "a.jpg", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)
	path := filepath.Join(store.Dir(), "owner-1", filepath.Base(obj.URL))
	require.FileExists(t, path)

	require.NoError(t, store.Delete(ctx, obj.URL))
	assert.NoFileExists(t, path)

	assert.NoError(t, store.Delete(ctx, obj.URL), "deleting twice is not an error")
	assert.ErrorIs(t, store.Delete(ctx, "https://elsewhere/x.png"), apperrors.ErrValidation)
	assert.ErrorIs(t, store.Delete(ctx, "/receipts/../etc/passwd"), apperrors.ErrValidation)
}
