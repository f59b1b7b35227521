package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
	"github.com/CHUNCHUNMARU-d/GYM/internal/repository"
	"github.com/CHUNCHUNMARU-d/GYM/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidPhotoType = errors.New("invalid or missing image content type")
	ErrUploadURLFailed  = errors.New("failed to generate upload URL")
)

// PhotoUploadTicket is handed to the coach so they can PUT the image
// directly to object storage, then confirm with the same object key.
type PhotoUploadTicket struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
}

// PhotoWithURL pairs stored metadata with a fresh presigned download URL.
type PhotoWithURL struct {
	domain.ProgressPhoto
	DownloadURL string `json:"download_url"`
}

// PhotoService manages progress photos for a coach's clients. Image bytes
// never pass through the API; only presigned URLs are exchanged.
type PhotoService interface {
	RequestUpload(ctx context.Context, coachID, clientID primitive.ObjectID, contentType string) (*PhotoUploadTicket, error)
	ConfirmUpload(ctx context.Context, coachID, clientID primitive.ObjectID, objectKey, fileName string, size int64, contentType string) (*domain.ProgressPhoto, error)
	GetClientPhotos(ctx context.Context, coachID, clientID primitive.ObjectID) ([]PhotoWithURL, error)
}

// photoService implements the PhotoService interface.
type photoService struct {
	photoRepo    repository.PhotoRepository
	coachService CoachService
	fileStorage  storage.FileStorage
}

// NewPhotoService creates a new instance of photoService.
func NewPhotoService(photoRepo repository.PhotoRepository, coachService CoachService, fileStorage storage.FileStorage) PhotoService {
	return &photoService{
		photoRepo:    photoRepo,
		coachService: coachService,
		fileStorage:  fileStorage,
	}
}

// RequestUpload validates ownership and hands out a presigned PUT URL for
// a fresh object key under the client's prefix.
func (s *photoService) RequestUpload(ctx context.Context, coachID, clientID primitive.ObjectID, contentType string) (*PhotoUploadTicket, error) {
	if _, err := s.coachService.GetOwnedClient(ctx, coachID, clientID); err != nil {
		return nil, err
	}
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidPhotoType
	}

	uniqueID := uuid.NewString()
	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("photos", clientID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLFailed
	}

	return &PhotoUploadTicket{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmUpload persists photo metadata after the coach finished the PUT
// against the presigned URL.
func (s *photoService) ConfirmUpload(ctx context.Context, coachID, clientID primitive.ObjectID, objectKey, fileName string, size int64, contentType string) (*domain.ProgressPhoto, error) {
	if _, err := s.coachService.GetOwnedClient(ctx, coachID, clientID); err != nil {
		return nil, err
	}
	if objectKey == "" {
		return nil, ErrValidationFailed
	}

	photo := &domain.ProgressPhoto{
		ClientID:    clientID,
		CoachID:     coachID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	}

	photoID, err := s.photoRepo.Create(ctx, photo)
	if err != nil {
		return nil, err
	}
	photo.ID = photoID

	return photo, nil
}

// GetClientPhotos lists a client's photos, newest first, each with a fresh
// presigned download URL.
func (s *photoService) GetClientPhotos(ctx context.Context, coachID, clientID primitive.ObjectID) ([]PhotoWithURL, error) {
	if _, err := s.coachService.GetOwnedClient(ctx, coachID, clientID); err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	result := make([]PhotoWithURL, 0, len(photos))
	for _, photo := range photos {
		downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, photo.S3ObjectKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			return nil, err
		}
		result = append(result, PhotoWithURL{
			ProgressPhoto: photo,
			DownloadURL:   downloadURL,
		})
	}

	return result, nil
}
