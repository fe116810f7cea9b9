package asset

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/google/uuid"

	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
)

type mockRepository struct {
	assets map[uuid.UUID]*Asset
}

func newMockRepository() *mockRepository {
	return &mockRepository{assets: make(map[uuid.UUID]*Asset)}
}

func (m *mockRepository) Create(ctx context.Context, a *Asset) error {
	m.assets[a.ID] = a
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Asset, error) {
	return m.assets[id], nil
}

func (m *mockRepository) List(ctx context.Context, p pagination.Params, typ Type, activeOnly bool) ([]*Asset, int, error) {
	out := []*Asset{}
	for _, a := range m.assets {
		if typ != "" && a.Type != typ {
			continue
		}
		if activeOnly && !a.IsActive {
			continue
		}
		out = append(out, a)
	}
	return out, len(out), nil
}

func (m *mockRepository) ListActive(ctx context.Context, typ Type) ([]*Asset, error) {
	out, _, err := m.List(ctx, pagination.Params{}, typ, true)
	return out, err
}

func (m *mockRepository) Update(ctx context.Context, a *Asset) error {
	if _, ok := m.assets[a.ID]; !ok {
		return ErrAssetNotFound
	}
	m.assets[a.ID] = a
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.assets[id]; !ok {
		return ErrAssetNotFound
	}
	delete(m.assets, id)
	return nil
}

type memStorage struct {
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (m *memStorage) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memStorage) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memStorage) GetURL(key string) string {
	return "https://cdn.example.com/" + key
}

func pngImage(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 64))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return &buf
}

func TestUploadFilterWithPlacement(t *testing.T) {
	repo := newMockRepository()
	store := newMemStorage()
	svc := NewService(repo, store)

	scale := 1.4
	anchor := int32(168)
	a, err := svc.Upload(context.Background(), &UploadAssetRequest{
		Name:       "Dog Ears",
		Type:       "filter",
		FilterType: "face",
		Scale:      &scale,
		AnchorIdx:  &anchor,
	}, pngImage(t))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if a.Type != TypeFilter {
		t.Errorf("expected filter, got %s", a.Type)
	}
	if !a.Scale.Valid || a.Scale.Float64 != 1.4 {
		t.Errorf("scale not stored: %+v", a.Scale)
	}
	if !a.AnchorIdx.Valid || a.AnchorIdx.Int32 != 168 {
		t.Errorf("anchor index not stored: %+v", a.AnchorIdx)
	}
	if !a.IsActive {
		t.Error("new assets should start active")
	}
	if len(store.objects) != 1 {
		t.Errorf("expected 1 stored object, got %d", len(store.objects))
	}
}

func TestUploadFrameIgnoresPlacement(t *testing.T) {
	svc := NewService(newMockRepository(), newMemStorage())

	scale := 2.0
	a, err := svc.Upload(context.Background(), &UploadAssetRequest{
		Name:  "Gold Frame",
		Type:  "frame",
		Scale: &scale,
	}, pngImage(t))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if a.Scale.Valid {
		t.Error("placement properties only apply to filters")
	}
}

func TestUploadRejectsUnknownType(t *testing.T) {
	svc := NewService(newMockRepository(), newMemStorage())

	_, err := svc.Upload(context.Background(), &UploadAssetRequest{
		Name: "Mystery",
		Type: "hologram",
	}, pngImage(t))
	if !errors.Is(err, ErrInvalidType) {
		t.Errorf("expected ErrInvalidType, got %v", err)
	}
}

func TestListActiveFiltersInactive(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, newMemStorage())

	a, err := svc.Upload(context.Background(), &UploadAssetRequest{Name: "Frame", Type: "frame"}, pngImage(t))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	inactive := false
	if _, err := svc.Update(context.Background(), a.ID, &UpdateAssetRequest{IsActive: &inactive}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	active, err := svc.ListActive(context.Background(), TypeFrame)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("deactivated assets should not be listed, got %d", len(active))
	}
}

func TestDeleteRemovesStoredImage(t *testing.T) {
	repo := newMockRepository()
	store := newMemStorage()
	svc := NewService(repo, store)

	a, err := svc.Upload(context.Background(), &UploadAssetRequest{Name: "Frame", Type: "frame"}, pngImage(t))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if err := svc.Delete(context.Background(), a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(store.objects) != 0 {
		t.Errorf("stored image should be removed, %d remain", len(store.objects))
	}
}
