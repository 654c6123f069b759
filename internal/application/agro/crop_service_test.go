package agro

import (
	"context"
	"testing"

	"github.com/agro/backend/internal/domain/agro"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCropService_Create(t *testing.T) {
	t.Run("creates crop on existing property", func(t *testing.T) {
		cropRepo := new(MockCropRepository)
		propertyRepo := new(MockPropertyRepository)
		service := NewCropService(cropRepo, propertyRepo)
		ctx := context.Background()
		property := newTestProperty(newTestProducer())

		propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
		cropRepo.On("Save", ctx, mock.AnythingOfType("*agro.Crop")).Return(nil)

		result, err := service.Create(ctx, CreateCropRequest{PropertyID: &property.ID, Name: "Soja", Season: "2023/2024"})

		require.NoError(t, err)
		assert.Equal(t, "Soja", result.Name)
		require.NotNil(t, result.Property)
		assert.Equal(t, property.ID, result.Property.ID)
		cropRepo.AssertExpectations(t)
	})

	t.Run("property id required", func(t *testing.T) {
		service := NewCropService(new(MockCropRepository), new(MockPropertyRepository))

		_, err := service.Create(context.Background(), CreateCropRequest{Name: "Soja", Season: "2023/2024"})

		assert.Equal(t, shared.CodePropertyIDRequired, domainCode(err))
	})

	t.Run("unknown property", func(t *testing.T) {
		cropRepo := new(MockCropRepository)
		propertyRepo := new(MockPropertyRepository)
		service := NewCropService(cropRepo, propertyRepo)
		ctx := context.Background()
		id := uuid.New()

		propertyRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateCropRequest{PropertyID: &id, Name: "Soja", Season: "2023/2024"})

		assert.Equal(t, shared.CodeNotFound, domainCode(err))
		cropRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCropService_Update(t *testing.T) {
	t.Run("merges fields", func(t *testing.T) {
		cropRepo := new(MockCropRepository)
		service := NewCropService(cropRepo, new(MockPropertyRepository))
		ctx := context.Background()
		property := newTestProperty(newTestProducer())
		crop, err := agro.NewCrop(property.ID, "Soja", "2023/2024")
		require.NoError(t, err)
		crop.Property = property

		cropRepo.On("FindByID", ctx, crop.ID).Return(crop, nil)
		cropRepo.On("Save", ctx, crop).Return(nil)

		result, err := service.Update(ctx, crop.ID, UpdateCropRequest{Season: strPtr("2024/2025")})

		require.NoError(t, err)
		assert.Equal(t, "Soja", result.Name)
		assert.Equal(t, "2024/2025", result.Season)
	})

	t.Run("rejects unknown target property", func(t *testing.T) {
		cropRepo := new(MockCropRepository)
		propertyRepo := new(MockPropertyRepository)
		service := NewCropService(cropRepo, propertyRepo)
		ctx := context.Background()
		crop, err := agro.NewCrop(uuid.New(), "Soja", "2023/2024")
		require.NoError(t, err)
		target := uuid.New()

		cropRepo.On("FindByID", ctx, crop.ID).Return(crop, nil)
		propertyRepo.On("ExistsByID", ctx, target).Return(false, nil)

		_, err = service.Update(ctx, crop.ID, UpdateCropRequest{PropertyID: &target})

		assert.Equal(t, shared.CodeNotFound, domainCode(err))
		cropRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		cropRepo := new(MockCropRepository)
		service := NewCropService(cropRepo, new(MockPropertyRepository))
		ctx := context.Background()
		id := uuid.New()

		cropRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(ctx, id, UpdateCropRequest{Name: strPtr("Milho")})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCropService_Delete(t *testing.T) {
	cropRepo := new(MockCropRepository)
	publisher := &recordingPublisher{}
	service := NewCropService(cropRepo, new(MockPropertyRepository))
	service.SetEventPublisher(publisher)
	ctx := context.Background()
	crop, err := agro.NewCrop(uuid.New(), "Soja", "2023/2024")
	require.NoError(t, err)
	crop.ClearDomainEvents()
	missing := uuid.New()

	cropRepo.On("FindByID", ctx, crop.ID).Return(crop, nil)
	cropRepo.On("Delete", ctx, crop.ID).Return(nil)
	cropRepo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

	require.NoError(t, service.Delete(ctx, crop.ID))
	assert.Equal(t, []string{agro.EventTypeCropDeleted}, publisher.types())

	assert.ErrorIs(t, service.Delete(ctx, missing), shared.ErrNotFound)
}

func TestCropService_ListAndGet(t *testing.T) {
	cropRepo := new(MockCropRepository)
	service := NewCropService(cropRepo, new(MockPropertyRepository))
	ctx := context.Background()
	crop, err := agro.NewCrop(uuid.New(), "Soja", "2023/2024")
	require.NoError(t, err)

	cropRepo.On("FindAll", ctx, mock.Anything).Return([]agro.Crop{*crop}, nil)
	cropRepo.On("Count", ctx, mock.Anything).Return(int64(1), nil)
	cropRepo.On("FindByID", ctx, crop.ID).Return(crop, nil)

	items, total, err := service.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)

	got, err := service.GetByID(ctx, crop.ID)
	require.NoError(t, err)
	assert.Equal(t, crop.ID, got.ID)
}
