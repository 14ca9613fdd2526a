package services

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUploadService_Save(t *testing.T) {
	tests := []struct {
		name          string
		identity      string
		admin         bool
		filename      string
		size          int64
		orderID       string
		customerName  string
		setupMocks    func(*mocks.MockUploadRepository, *mocks.MockProofStore)
		expectedName  string
		expectedOrder string
		expectedError error
	}{
		{
			name:         "customer upload is recorded under their own name",
			identity:     TestUsername,
			filename:     "receipt.pdf",
			size:         1024,
			orderID:      "o-1",
			customerName: "Somebody Else",
			setupMocks: func(uploads *mocks.MockUploadRepository, store *mocks.MockProofStore) {
				store.On("Save", mock.Anything, mock.Anything, "receipt.pdf", "o-1", TestUsername).Return("uploaded_20260101120000_receipt.pdf", nil)
				uploads.On("Save", mock.AnythingOfType("*domain.Upload")).Return(nil)
			},
			expectedName:  TestUsername,
			expectedOrder: "o-1",
		},
		{
			name:         "admin may upload on behalf of a customer",
			identity:     "admin",
			admin:        true,
			filename:     "receipt.jpg",
			size:         2048,
			orderID:      "o-2",
			customerName: "Alice Johnson",
			setupMocks: func(uploads *mocks.MockUploadRepository, store *mocks.MockProofStore) {
				store.On("Save", mock.Anything, mock.Anything, "receipt.jpg", "o-2", "Alice Johnson").Return("uploaded_20260101120000_receipt.jpg", nil)
				uploads.On("Save", mock.AnythingOfType("*domain.Upload")).Return(nil)
			},
			expectedName:  "Alice Johnson",
			expectedOrder: "o-2",
		},
		{
			name:     "missing fields fall back to placeholders",
			identity: "admin",
			admin:    true,
			filename: "receipt.png",
			size:     512,
			setupMocks: func(uploads *mocks.MockUploadRepository, store *mocks.MockProofStore) {
				store.On("Save", mock.Anything, mock.Anything, "receipt.png", "No Order ID", "Unknown Customer").Return("uploaded_20260101120000_receipt.png", nil)
				uploads.On("Save", mock.AnythingOfType("*domain.Upload")).Return(nil)
			},
			expectedName:  "Unknown Customer",
			expectedOrder: "No Order ID",
		},
		{
			name:          "empty file rejected",
			identity:      TestUsername,
			filename:      "receipt.pdf",
			size:          0,
			setupMocks:    func(uploads *mocks.MockUploadRepository, store *mocks.MockProofStore) {},
			expectedError: ErrFileRequired,
		},
		{
			name:          "oversized file rejected",
			identity:      TestUsername,
			filename:      "receipt.pdf",
			size:          maxUploadSize + 1,
			setupMocks:    func(uploads *mocks.MockUploadRepository, store *mocks.MockProofStore) {},
			expectedError: ErrFileTooLarge,
		},
		{
			name:          "executable extension rejected",
			identity:      TestUsername,
			filename:      "payload.exe",
			size:          1024,
			setupMocks:    func(uploads *mocks.MockUploadRepository, store *mocks.MockProofStore) {},
			expectedError: ErrFileTypeInvalid,
		},
		{
			name:         "extension check is case insensitive",
			identity:     TestUsername,
			filename:     "Receipt.PDF",
			size:         1024,
			orderID:      "o-3",
			setupMocks: func(uploads *mocks.MockUploadRepository, store *mocks.MockProofStore) {
				store.On("Save", mock.Anything, mock.Anything, "Receipt.PDF", "o-3", TestUsername).Return("uploaded_20260101120000_Receipt.PDF", nil)
				uploads.On("Save", mock.AnythingOfType("*domain.Upload")).Return(nil)
			},
			expectedName:  TestUsername,
			expectedOrder: "o-3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploads := new(mocks.MockUploadRepository)
			store := new(mocks.MockProofStore)
			tt.setupMocks(uploads, store)

			identity := customerIdentity(tt.identity)
			if tt.admin {
				identity = adminIdentity()
			}

			service := NewUploadService(uploads, store)
			upload, err := service.Save(context.Background(), identity, strings.NewReader("data"), tt.filename, tt.size, tt.orderID, tt.customerName)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, upload)
				store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, upload)
				assert.Equal(t, tt.expectedName, upload.CustomerName)
				assert.Equal(t, tt.expectedOrder, upload.OrderID)
				assert.True(t, strings.HasPrefix(upload.FileURL, "/uploads/uploaded_"))
			}

			uploads.AssertExpectations(t)
			store.AssertExpectations(t)
		})
	}
}

func TestUploadService_List(t *testing.T) {
	all := []domain.Upload{
		{ID: "u-1", CustomerName: "alice"},
		{ID: "u-2", CustomerName: "Bob Smith"},
		{ID: "u-3", CustomerName: "Alice Johnson"},
	}

	t.Run("admin sees every upload", func(t *testing.T) {
		uploads := new(mocks.MockUploadRepository)
		uploads.On("FindAll").Return(all, nil)

		service := NewUploadService(uploads, new(mocks.MockProofStore))
		result, err := service.List(adminIdentity())

		assert.NoError(t, err)
		assert.Len(t, result, 3)
	})

	t.Run("customer sees only their own uploads", func(t *testing.T) {
		uploads := new(mocks.MockUploadRepository)
		uploads.On("FindAll").Return(all, nil)

		service := NewUploadService(uploads, new(mocks.MockProofStore))
		result, err := service.List(customerIdentity(TestUsername))

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, "u-1", result[0].ID)
		assert.Equal(t, "u-3", result[1].ID)
	})
}

func TestUploadService_Delete(t *testing.T) {
	t.Run("owner deletes own upload", func(t *testing.T) {
		uploads := new(mocks.MockUploadRepository)
		uploads.On("FindByID", "u-1").Return(&domain.Upload{ID: "u-1", CustomerName: "alice"}, nil)
		uploads.On("Delete", "u-1").Return(nil)

		service := NewUploadService(uploads, new(mocks.MockProofStore))
		assert.NoError(t, service.Delete(customerIdentity(TestUsername), "u-1"))
		uploads.AssertExpectations(t)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		uploads := new(mocks.MockUploadRepository)
		uploads.On("FindByID", "u-2").Return(&domain.Upload{ID: "u-2", CustomerName: "Bob Smith"}, nil)

		service := NewUploadService(uploads, new(mocks.MockProofStore))
		assert.ErrorIs(t, service.Delete(customerIdentity(TestUsername), "u-2"), ErrAccessDenied)
		uploads.AssertNotCalled(t, "Delete", mock.Anything)
	})

	t.Run("missing upload", func(t *testing.T) {
		uploads := new(mocks.MockUploadRepository)
		uploads.On("FindByID", "missing").Return(nil, nil)

		service := NewUploadService(uploads, new(mocks.MockProofStore))
		assert.ErrorIs(t, service.Delete(adminIdentity(), "missing"), ErrUploadNotFound)
	})
}

func TestUploadService_Download(t *testing.T) {
	uploads := new(mocks.MockUploadRepository)
	uploads.On("FindByID", "u-1").Return(&domain.Upload{
		ID:           "u-1",
		CustomerName: "alice",
		FileURL:      "/uploads/uploaded_20260101120000_receipt.pdf",
	}, nil)

	service := NewUploadService(uploads, new(mocks.MockProofStore))
	filename, err := service.Download(customerIdentity(TestUsername), "u-1")

	assert.NoError(t, err)
	assert.Equal(t, "uploaded_20260101120000_receipt.pdf", filename)
}
