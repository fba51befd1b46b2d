package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shortboard/pkg/models"
	"shortboard/pkg/roles"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) AddUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("username", "admin")
	c.Set("role", "admin")
	return c, w
}

func TestGetUserList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	tests := []struct {
		name           string
		setupMock      func()
		expectedStatus int
	}{
		{
			name: "successful list retrieval",
			setupMock: func() {
				mockRepo.On("GetUsers", mock.Anything).Return([]models.User{
					{ID: "u-1", Username: "admin", Role: roles.Admin},
					{ID: "u-2", Username: "buyer", Role: roles.Purchaser},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.On("GetUsers", mock.Anything).Return(nil, errors.New("storage error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()
			c.Request = httptest.NewRequest("GET", "/users", nil)

			handler.GetUserList(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAddUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	tests := []struct {
		name           string
		payload        models.CreateUserRequest
		setupMock      func()
		expectedStatus int
	}{
		{
			name: "successful creation",
			payload: models.CreateUserRequest{
				Username: "planner",
				Role:     roles.Scheduler,
			},
			setupMock: func() {
				mockRepo.On("AddUser", mock.Anything, mock.Anything).Return(&models.User{
					ID:       "u-3",
					Username: "planner",
					Role:     roles.Scheduler,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "duplicate username",
			payload: models.CreateUserRequest{
				Username: "admin",
				Role:     roles.Viewer,
			},
			setupMock: func() {
				mockRepo.On("AddUser", mock.Anything, mock.Anything).Return(nil, ErrDuplicateUsername)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "invalid role",
			payload: models.CreateUserRequest{
				Username: "planner",
				Role:     "superuser",
			},
			setupMock: func() {
				mockRepo.On("AddUser", mock.Anything, mock.Anything).Return(nil, ErrInvalidRole)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "repository error",
			payload: models.CreateUserRequest{
				Username: "planner",
				Role:     roles.Scheduler,
			},
			setupMock: func() {
				mockRepo.On("AddUser", mock.Anything, mock.Anything).Return(nil, errors.New("storage error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest("POST", "/users", bytes.NewBuffer(body))

			handler.AddUser(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDeleteUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	tests := []struct {
		name           string
		username       string
		setupMock      func()
		expectedStatus int
	}{
		{
			name:     "successful deletion",
			username: "planner",
			setupMock: func() {
				mockRepo.On("DeleteUser", mock.Anything, "planner").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "built-in admin is protected",
			username: "admin",
			setupMock: func() {
				mockRepo.On("DeleteUser", mock.Anything, "admin").Return(ErrProtectedUser)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:     "repository error",
			username: "planner",
			setupMock: func() {
				mockRepo.On("DeleteUser", mock.Anything, "planner").Return(errors.New("storage error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			c.Request = httptest.NewRequest("DELETE", "/users/"+tt.username, nil)
			c.Params = []gin.Param{{Key: "username", Value: tt.username}}

			handler.DeleteUser(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}
