package services

import (
	"context"
	"errors"
	"testing"

	"github.com/eslamalii/user-management-api/internal/models"
	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	tests := []struct {
		name        string
		mockSetup   func(reader *MockUserReader, writer *MockUserWriter, kw *MockKafkaWriter)
		expectedErr error
		wantID      int64
	}{
		{
			name: "success",
			mockSetup: func(reader *MockUserReader, writer *MockUserWriter, kw *MockKafkaWriter) {
				reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(nil, nil)
				writer.EXPECT().
					Save(ctx, "Alice", "alice@example.com", gomock.Any(), false).
					Return(int64(1), nil)
				kw.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantID: 1,
		},
		{
			name: "email already taken",
			mockSetup: func(reader *MockUserReader, writer *MockUserWriter, kw *MockKafkaWriter) {
				reader.EXPECT().
					GetByEmail(ctx, "alice@example.com").
					Return(&models.UserDB{ID: 1, Email: "alice@example.com"}, nil)
			},
			expectedErr: ErrUserAlreadyExists,
		},
		{
			name: "concurrent insert loses to unique index",
			mockSetup: func(reader *MockUserReader, writer *MockUserWriter, kw *MockKafkaWriter) {
				reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(nil, nil)
				writer.EXPECT().
					Save(ctx, "Alice", "alice@example.com", gomock.Any(), false).
					Return(int64(0), &pgconn.PgError{Code: "23505"})
			},
			expectedErr: ErrUserAlreadyExists,
		},
		{
			name: "reader failure",
			mockSetup: func(reader *MockUserReader, writer *MockUserWriter, kw *MockKafkaWriter) {
				reader.EXPECT().
					GetByEmail(ctx, "alice@example.com").
					Return(nil, errors.New("connection refused"))
			},
			expectedErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewMockUserReader(ctrl)
			writer := NewMockUserWriter(ctrl)
			kw := NewMockKafkaWriter(ctrl)
			tt.mockSetup(reader, writer, kw)

			svc := NewAuthService(reader, writer, NewMockJWTGenerator(ctrl), kw)

			user, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", false)

			if tt.expectedErr != nil {
				assert.Nil(t, user)
				assert.EqualError(t, err, tt.expectedErr.Error())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, user.ID)
			assert.Equal(t, "Alice", user.Name)
			assert.Empty(t, user.PasswordHash)
			assert.False(t, user.IsVerified)
		})
	}
}

func TestAuthService_Register_NilKafkaWriter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	reader := NewMockUserReader(ctrl)
	writer := NewMockUserWriter(ctrl)
	reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(nil, nil)
	writer.EXPECT().
		Save(ctx, "Alice", "alice@example.com", gomock.Any(), false).
		Return(int64(1), nil)

	svc := NewAuthService(reader, writer, NewMockJWTGenerator(ctrl), nil)

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", false)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	stored := func(verified bool) *models.UserDB {
		return &models.UserDB{
			ID:           1,
			Name:         "Alice",
			Email:        "alice@example.com",
			PasswordHash: string(hash),
			IsVerified:   verified,
		}
	}

	tests := []struct {
		name        string
		password    string
		mockSetup   func(reader *MockUserReader, writer *MockUserWriter, jwt *MockJWTGenerator)
		expectedErr error
	}{
		{
			name:     "success",
			password: "password123",
			mockSetup: func(reader *MockUserReader, writer *MockUserWriter, jwt *MockJWTGenerator) {
				reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(stored(true), nil)
				writer.EXPECT().IncrementLoginStats(ctx, int64(1)).Return(nil)
				jwt.EXPECT().Generate(ctx, int64(1), false).Return("JWT_TOKEN", nil)
			},
		},
		{
			name:     "unknown email",
			password: "password123",
			mockSetup: func(reader *MockUserReader, writer *MockUserWriter, jwt *MockJWTGenerator) {
				reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(nil, nil)
			},
			expectedErr: ErrUserDoesNotExist,
		},
		{
			name:     "wrong password",
			password: "wrong",
			mockSetup: func(reader *MockUserReader, writer *MockUserWriter, jwt *MockJWTGenerator) {
				reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(stored(true), nil)
			},
			expectedErr: ErrInvalidCredentials,
		},
		{
			name:     "correct password but unverified",
			password: "password123",
			mockSetup: func(reader *MockUserReader, writer *MockUserWriter, jwt *MockJWTGenerator) {
				reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(stored(false), nil)
			},
			expectedErr: ErrUserNotVerified,
		},
		{
			name:     "wrong password on unverified account hides verification state",
			password: "wrong",
			mockSetup: func(reader *MockUserReader, writer *MockUserWriter, jwt *MockJWTGenerator) {
				reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(stored(false), nil)
			},
			expectedErr: ErrInvalidCredentials,
		},
		{
			name:     "login stats update failure",
			password: "password123",
			mockSetup: func(reader *MockUserReader, writer *MockUserWriter, jwt *MockJWTGenerator) {
				reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(stored(true), nil)
				writer.EXPECT().IncrementLoginStats(ctx, int64(1)).Return(errors.New("deadlock"))
			},
			expectedErr: errors.New("deadlock"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewMockUserReader(ctrl)
			writer := NewMockUserWriter(ctrl)
			jwt := NewMockJWTGenerator(ctrl)
			tt.mockSetup(reader, writer, jwt)

			svc := NewAuthService(reader, writer, jwt, nil)

			token, user, err := svc.Login(ctx, "alice@example.com", tt.password)

			if tt.expectedErr != nil {
				assert.Empty(t, token)
				assert.Nil(t, user)
				assert.EqualError(t, err, tt.expectedErr.Error())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "JWT_TOKEN", token)
			assert.Empty(t, user.PasswordHash)
			assert.Equal(t, int64(1), user.LoginCount)
			assert.NotNil(t, user.LastLogin)
		})
	}
}

func TestAuthService_Verify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	tests := []struct {
		name        string
		mockSetup   func(reader *MockUserReader, writer *MockUserWriter)
		expectedErr error
		want        bool
	}{
		{
			name: "first call reports previous flag",
			mockSetup: func(reader *MockUserReader, writer *MockUserWriter) {
				reader.EXPECT().
					GetByEmail(ctx, "alice@example.com").
					Return(&models.UserDB{ID: 1, IsVerified: false}, nil)
				writer.EXPECT().SetVerified(ctx, int64(1)).Return(nil)
			},
			want: false,
		},
		{
			name: "repeat call is idempotent",
			mockSetup: func(reader *MockUserReader, writer *MockUserWriter) {
				reader.EXPECT().
					GetByEmail(ctx, "alice@example.com").
					Return(&models.UserDB{ID: 1, IsVerified: true}, nil)
				writer.EXPECT().SetVerified(ctx, int64(1)).Return(nil)
			},
			want: true,
		},
		{
			name: "unknown email",
			mockSetup: func(reader *MockUserReader, writer *MockUserWriter) {
				reader.EXPECT().GetByEmail(ctx, "ghost@x.com").Return(nil, nil)
			},
			expectedErr: ErrUserDoesNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewMockUserReader(ctrl)
			writer := NewMockUserWriter(ctrl)
			tt.mockSetup(reader, writer)

			svc := NewAuthService(reader, writer, NewMockJWTGenerator(ctrl), nil)

			email := "alice@example.com"
			if tt.expectedErr != nil {
				email = "ghost@x.com"
			}

			got, err := svc.Verify(ctx, email)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
