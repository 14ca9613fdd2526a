package services

import (
	"context"
	"errors"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/domain"
	"storefront/internal/infra/storage"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10MB

var (
	ErrUploadNotFound  = errors.New("upload not found")
	ErrFileRequired    = errors.New("please select a file")
	ErrFileTooLarge    = errors.New("file size must be less than 10MB")
	ErrFileTypeInvalid = errors.New("allowed file types: PDF, JPG, JPEG, PNG, DOC, DOCX")
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".doc":  true,
	".docx": true,
}

type UploadService struct {
	uploads repository.UploadRepository
	store   storage.ProofStore
}

func NewUploadService(uploads repository.UploadRepository, store storage.ProofStore) *UploadService {
	return &UploadService{uploads: uploads, store: store}
}

// Save validates and records a proof-of-payment upload. Customers always
// upload under their own name; the customerName argument is only honored
// for admins.
func (s *UploadService) Save(ctx context.Context, identity auth.Identity, file io.Reader, filename string, size int64, orderID, customerName string) (*domain.Upload, error) {
	if filename == "" || size == 0 {
		return nil, ErrFileRequired
	}
	if size > maxUploadSize {
		return nil, ErrFileTooLarge
	}
	if !allowedExtensions[strings.ToLower(path.Ext(filename))] {
		return nil, ErrFileTypeInvalid
	}

	if !identity.IsAdmin() {
		customerName = identity.Username
	}
	if customerName == "" {
		customerName = "Unknown Customer"
	}
	if orderID == "" {
		orderID = "No Order ID"
	}

	storedName, err := s.store.Save(ctx, file, filename, orderID, customerName)
	if err != nil {
		return nil, err
	}

	upload := &domain.Upload{
		ID:           uuid.New().String(),
		CustomerName: customerName,
		OrderID:      orderID,
		FileURL:      "/uploads/" + storedName,
		UploadedAt:   time.Now(),
	}

	if err := s.uploads.Save(upload); err != nil {
		return nil, err
	}

	log.Printf("user %q uploaded proof of payment %q for order %s", identity.Username, storedName, orderID)
	return upload, nil
}

// List returns every upload for admins and only owned uploads for
// customers.
func (s *UploadService) List(identity auth.Identity) ([]domain.Upload, error) {
	all, err := s.uploads.FindAll()
	if err != nil {
		return nil, err
	}
	if identity.IsAdmin() {
		return all, nil
	}

	owned := make([]domain.Upload, 0, len(all))
	for _, u := range all {
		if auth.OwnsResource(identity, u.CustomerName) {
			owned = append(owned, u)
		}
	}
	return owned, nil
}

func (s *UploadService) Get(identity auth.Identity, id string) (*domain.Upload, error) {
	upload, err := s.uploads.FindByID(id)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, ErrUploadNotFound
	}
	if !auth.OwnsResource(identity, upload.CustomerName) {
		log.Printf("user %q denied access to upload %s", identity.Username, id)
		return nil, ErrAccessDenied
	}
	return upload, nil
}

func (s *UploadService) Delete(identity auth.Identity, id string) error {
	upload, err := s.Get(identity, id)
	if err != nil {
		return err
	}
	return s.uploads.Delete(upload.ID)
}

// Download resolves the stored file name for an owned upload. No bytes
// are served in the current deployment.
func (s *UploadService) Download(identity auth.Identity, id string) (string, error) {
	upload, err := s.Get(identity, id)
	if err != nil {
		return "", err
	}
	return path.Base(upload.FileURL), nil
}
