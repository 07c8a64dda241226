package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/moodreel/moodreel_app/internal/apperrors"
	"github.com/moodreel/moodreel_app/internal/core/domain"
	portssvc "github.com/moodreel/moodreel_app/internal/core/ports/services"
	"github.com/moodreel/moodreel_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MediaServiceTestSuite struct {
	suite.Suite
	mockBlobRepo *MockBlobRepository
	service      portssvc.MediaSvcFacade
}

func (suite *MediaServiceTestSuite) SetupTest() {
	suite.mockBlobRepo = new(MockBlobRepository)
	suite.service = services.NewMediaService(suite.mockBlobRepo, 1024)
}

func (suite *MediaServiceTestSuite) TestUploadFile_Success() {
	ctx := context.Background()
	payload := []byte("RIFF....WEBPVP8 ")

	var savedID string
	suite.mockBlobRepo.On("SaveBlob", ctx, mock.MatchedBy(func(b domain.Blob) bool {
		savedID = b.BlobID
		return b.BlobID != "" && bytes.Equal(b.Payload, payload) && b.Size == int64(len(payload)) && b.ContentType != ""
	})).Return(nil).Once()
	suite.mockBlobRepo.On("ResolveURL", ctx, mock.AnythingOfType("string")).Return("/api/v1/media/some-id", nil).Once()

	resp, err := suite.service.UploadFile(ctx, "clip.webp", bytes.NewReader(payload), int64(len(payload)))

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal("/api/v1/media/some-id", resp.FileURL)
	suite.Equal("blob", resp.FileRef.Kind)
	suite.Equal(savedID, resp.FileRef.Value)
	suite.Equal(int64(len(payload)), resp.Size)
	suite.mockBlobRepo.AssertExpectations(suite.T())
}

func (suite *MediaServiceTestSuite) TestUploadFile_NilReader() {
	ctx := context.Background()

	resp, err := suite.service.UploadFile(ctx, "clip.mp4", nil, 10)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBlobRepo.AssertNotCalled(suite.T(), "SaveBlob", mock.Anything, mock.Anything)
}

func (suite *MediaServiceTestSuite) TestUploadFile_EmptyPayload() {
	ctx := context.Background()

	resp, err := suite.service.UploadFile(ctx, "clip.mp4", strings.NewReader(""), 0)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MediaServiceTestSuite) TestUploadFile_DeclaredSizeOverLimit() {
	ctx := context.Background()

	resp, err := suite.service.UploadFile(ctx, "huge.mp4", strings.NewReader("x"), 2048)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBlobRepo.AssertNotCalled(suite.T(), "SaveBlob", mock.Anything, mock.Anything)
}

func (suite *MediaServiceTestSuite) TestUploadFile_ActualSizeOverLimit() {
	ctx := context.Background()
	// Declared size lies; the payload itself is over the limit.
	payload := strings.Repeat("a", 2048)

	resp, err := suite.service.UploadFile(ctx, "huge.mp4", strings.NewReader(payload), 10)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBlobRepo.AssertNotCalled(suite.T(), "SaveBlob", mock.Anything, mock.Anything)
}

func (suite *MediaServiceTestSuite) TestUploadFile_SaveError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockBlobRepo.On("SaveBlob", ctx, mock.AnythingOfType("domain.Blob")).Return(expectedErr).Once()

	resp, err := suite.service.UploadFile(ctx, "clip.mp4", strings.NewReader("payload"), 7)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, expectedErr)
	suite.mockBlobRepo.AssertExpectations(suite.T())
}

func (suite *MediaServiceTestSuite) TestOpenBlob_Success() {
	ctx := context.Background()
	blob := &domain.Blob{BlobID: "blob-1", Payload: []byte("data"), ContentType: "audio/webm", Size: 4}

	suite.mockBlobRepo.On("FindBlobByID", ctx, "blob-1").Return(blob, nil).Once()

	got, err := suite.service.OpenBlob(ctx, "blob-1")

	suite.Require().NoError(err)
	suite.Equal(blob, got)
	suite.mockBlobRepo.AssertExpectations(suite.T())
}

func (suite *MediaServiceTestSuite) TestOpenBlob_NotFound() {
	ctx := context.Background()

	suite.mockBlobRepo.On("FindBlobByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.OpenBlob(ctx, "missing")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestMediaService(t *testing.T) {
	suite.Run(t, new(MediaServiceTestSuite))
}
