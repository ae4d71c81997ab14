package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "pulseralux/internal/errors"
	"pulseralux/internal/kv"
	"pulseralux/internal/model"
	"pulseralux/internal/session"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func newAuthService(repo *MockUserRepository) AuthService {
	tokens := session.NewTokenService("test-secret")
	sessions := session.NewStore(kv.NewMemory())
	return NewAuthService(repo, tokens, sessions, nil)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name            string
		userName        string
		email           string
		password        string
		confirmPassword string
		setupMock       func(*MockUserRepository)
		expectedError   error
	}{
		{
			name:            "successful registration",
			userName:        "Test User",
			email:           "a@x.com",
			password:        "secret123",
			confirmPassword: "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.User).ID = 1
				}).Return(nil)
			},
		},
		{
			name:            "email already registered",
			userName:        "Existing User",
			email:           "a@x.com",
			password:        "secret123",
			confirmPassword: "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{Email: "a@x.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:            "password too short",
			userName:        "Short",
			email:           "short@x.com",
			password:        "abc",
			confirmPassword: "abc",
			setupMock:       func(m *MockUserRepository) {},
			expectedError:   apperrors.ErrPasswordTooShort,
		},
		{
			name:            "password confirmation mismatch",
			userName:        "Mismatch",
			email:           "mm@x.com",
			password:        "secret123",
			confirmPassword: "secret124",
			setupMock:       func(m *MockUserRepository) {},
			expectedError:   apperrors.ErrPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newAuthService(mockRepo)
			sess, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password, tt.confirmPassword)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, sess)
			} else {
				assert.NoError(t, err)
				assert.True(t, sess.Authenticated)
				assert.NotEmpty(t, sess.Token)
				assert.Equal(t, tt.email, sess.Profile.Email)
				assert.Equal(t, tt.userName, sess.Profile.Name)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "a@x.com",
			password: "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{
					ID:       1,
					Name:     "Test User",
					Email:    "a@x.com",
					Password: "secret123",
				}, nil)
			},
		},
		{
			name:     "no account for email",
			email:    "missing@x.com",
			password: "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "missing@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:     "wrong password",
			email:    "a@x.com",
			password: "nope nope",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{
					ID:       1,
					Email:    "a@x.com",
					Password: "secret123",
				}, nil)
			},
			expectedError: apperrors.ErrWrongPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newAuthService(mockRepo)
			sess, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, sess)
			} else {
				assert.NoError(t, err)
				assert.True(t, sess.Authenticated)
				assert.NotEmpty(t, sess.Token)
				assert.Equal(t, tt.email, sess.Profile.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RestoreAndLogout(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{
		ID:       1,
		Name:     "Test User",
		Email:    "a@x.com",
		Password: "secret123",
	}, nil)

	svc := newAuthService(mockRepo)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "a@x.com", "secret123")
	assert.NoError(t, err)

	// Restore uses the persisted profile only; no user lookup happens.
	restored := svc.Restore(ctx, sess.Token)
	assert.True(t, restored.Authenticated)
	assert.Equal(t, sess.Profile, restored.Profile)

	assert.NoError(t, svc.Logout(ctx, sess.Token))

	gone := svc.Restore(ctx, sess.Token)
	assert.False(t, gone.Authenticated)
}

func TestAuthService_RestoreUnknownToken(t *testing.T) {
	svc := newAuthService(new(MockUserRepository))

	sess := svc.Restore(context.Background(), "token-that-was-never-issued")
	assert.False(t, sess.Authenticated)
}

// brokenStore fails every operation, standing in for an unavailable backend.
type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("store unavailable")
}
func (brokenStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("store unavailable")
}
func (brokenStore) Delete(ctx context.Context, key string) error {
	return errors.New("store unavailable")
}

func TestAuthService_RestoreFailsOpenOnStorageError(t *testing.T) {
	tokens := session.NewTokenService("test-secret")
	sessions := session.NewStore(brokenStore{})
	svc := NewAuthService(new(MockUserRepository), tokens, sessions, nil)

	sess := svc.Restore(context.Background(), "some-token")
	assert.False(t, sess.Authenticated)
}
