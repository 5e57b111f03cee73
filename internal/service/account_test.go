package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/account-server/internal/mocks"
	"github.com/dtroode/account-server/internal/model"
	"github.com/dtroode/account-server/internal/service"
	"github.com/dtroode/account-server/internal/testutil"
)

func newAccountService(
	store *mocks.UserStore,
	hasher *mocks.PasswordHasher,
	manager *mocks.TokenManager,
	storage *mocks.Storage,
	notifier *mocks.Notifier,
) *service.Account {
	return service.NewAccount(store, hasher, manager, storage, notifier, testutil.MakeNoopLogger())
}

func TestAccount_Register(t *testing.T) {
	ctx := context.Background()

	store := &mocks.UserStore{}
	hasher := &mocks.PasswordHasher{}
	manager := &mocks.TokenManager{}
	notifier := &mocks.Notifier{}

	userID := uuid.New()
	hasher.On("Hash", "Sup3rSecret").Return("$2a$10$hash", nil).Once()
	store.On("Create", ctx, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "a@x.com" &&
			u.PasswordHash == "$2a$10$hash" &&
			u.Phone == "5551234567" &&
			!u.EmailVerified &&
			u.VerificationToken != nil && len(*u.VerificationToken) == 64 &&
			u.VerificationExpiresAt != nil
	})).Return(model.User{ID: userID, Email: "a@x.com"}, nil).Once()
	notifier.On("SendVerification", mock.Anything, "a@x.com", mock.Anything).Return(nil).Once()
	manager.On("Generate", userID).Return("session-token", nil).Once()

	svc := newAccountService(store, hasher, manager, &mocks.Storage{}, notifier)

	user, sessionToken, err := svc.Register(ctx, service.RegisterParams{
		Email:    "a@x.com",
		Password: "Sup3rSecret",
		Phone:    "5551234567",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "session-token", sessionToken)
	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestAccount_Register_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params service.RegisterParams
	}{
		{name: "missing email", params: service.RegisterParams{Password: "Sup3rSecret", Phone: "5551234567"}},
		{name: "missing phone", params: service.RegisterParams{Email: "a@x.com", Password: "Sup3rSecret"}},
		{name: "missing password", params: service.RegisterParams{Email: "a@x.com", Phone: "5551234567"}},
		{name: "short password", params: service.RegisterParams{Email: "a@x.com", Password: "short", Phone: "5551234567"}},
	}

	svc := newAccountService(&mocks.UserStore{}, &mocks.PasswordHasher{}, &mocks.TokenManager{}, &mocks.Storage{}, &mocks.Notifier{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tt.params)
			var validationErr *model.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestAccount_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()

	store := &mocks.UserStore{}
	hasher := &mocks.PasswordHasher{}

	hasher.On("Hash", "Sup3rSecret").Return("$2a$10$hash", nil).Once()
	store.On("Create", ctx, mock.Anything).Return(model.User{}, model.ErrEmailTaken).Once()

	svc := newAccountService(store, hasher, &mocks.TokenManager{}, &mocks.Storage{}, &mocks.Notifier{})

	_, _, err := svc.Register(ctx, service.RegisterParams{Email: "a@x.com", Password: "Sup3rSecret", Phone: "5551234567"})
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestAccount_Register_NotificationFailureIgnored(t *testing.T) {
	ctx := context.Background()

	store := &mocks.UserStore{}
	hasher := &mocks.PasswordHasher{}
	manager := &mocks.TokenManager{}
	notifier := &mocks.Notifier{}

	userID := uuid.New()
	hasher.On("Hash", "Sup3rSecret").Return("$2a$10$hash", nil).Once()
	store.On("Create", ctx, mock.Anything).Return(model.User{ID: userID, Email: "a@x.com"}, nil).Once()
	notifier.On("SendVerification", mock.Anything, "a@x.com", mock.Anything).Return(assert.AnError).Once()
	manager.On("Generate", userID).Return("session-token", nil).Once()

	svc := newAccountService(store, hasher, manager, &mocks.Storage{}, notifier)

	_, sessionToken, err := svc.Register(ctx, service.RegisterParams{Email: "a@x.com", Password: "Sup3rSecret", Phone: "5551234567"})
	require.NoError(t, err)
	assert.Equal(t, "session-token", sessionToken)
}

func TestAccount_Login_UnknownEmailAndWrongPasswordCollapse(t *testing.T) {
	ctx := context.Background()

	store := &mocks.UserStore{}
	hasher := &mocks.PasswordHasher{}

	store.On("GetByEmail", ctx, "nobody@x.com").Return(model.User{}, model.ErrNotFound).Once()
	hasher.On("Verify", "whatever", service.DummyPasswordHash).Return(false).Once()

	userID := uuid.New()
	store.On("GetByEmail", ctx, "a@x.com").Return(model.User{ID: userID, Email: "a@x.com", PasswordHash: "$2a$10$hash"}, nil).Once()
	hasher.On("Verify", "wrong", "$2a$10$hash").Return(false).Once()

	svc := newAccountService(store, hasher, &mocks.TokenManager{}, &mocks.Storage{}, &mocks.Notifier{})

	_, _, unknownErr := svc.Login(ctx, "nobody@x.com", "whatever")
	_, _, wrongErr := svc.Login(ctx, "a@x.com", "wrong")

	assert.ErrorIs(t, unknownErr, model.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, model.ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)
	hasher.AssertExpectations(t)
}

func TestAccount_Login_Success(t *testing.T) {
	ctx := context.Background()

	store := &mocks.UserStore{}
	hasher := &mocks.PasswordHasher{}
	manager := &mocks.TokenManager{}

	userID := uuid.New()
	store.On("GetByEmail", ctx, "a@x.com").Return(model.User{ID: userID, Email: "a@x.com", PasswordHash: "$2a$10$hash"}, nil).Once()
	hasher.On("Verify", "Sup3rSecret", "$2a$10$hash").Return(true).Once()
	store.On("TouchLastSeen", ctx, userID).Return(nil).Once()
	manager.On("Generate", userID).Return("session-token", nil).Once()

	svc := newAccountService(store, hasher, manager, &mocks.Storage{}, &mocks.Notifier{})

	user, sessionToken, err := svc.Login(ctx, "a@x.com", "Sup3rSecret")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "session-token", sessionToken)
	store.AssertExpectations(t)
}

func TestAccount_Login_LastSeenFailureIgnored(t *testing.T) {
	ctx := context.Background()

	store := &mocks.UserStore{}
	hasher := &mocks.PasswordHasher{}
	manager := &mocks.TokenManager{}

	userID := uuid.New()
	store.On("GetByEmail", ctx, "a@x.com").Return(model.User{ID: userID, PasswordHash: "$2a$10$hash"}, nil).Once()
	hasher.On("Verify", "Sup3rSecret", "$2a$10$hash").Return(true).Once()
	store.On("TouchLastSeen", ctx, userID).Return(assert.AnError).Once()
	manager.On("Generate", userID).Return("session-token", nil).Once()

	svc := newAccountService(store, hasher, manager, &mocks.Storage{}, &mocks.Notifier{})

	_, _, err := svc.Login(ctx, "a@x.com", "Sup3rSecret")
	require.NoError(t, err)
}

func TestAccount_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	store := &mocks.UserStore{}
	userID := uuid.New()
	update := model.ProfileUpdate{FirstName: "Anna", City: "Riga"}
	store.On("UpdateProfile", ctx, userID, update).Return(model.User{ID: userID, FirstName: "Anna", City: "Riga"}, nil).Once()

	svc := newAccountService(store, &mocks.PasswordHasher{}, &mocks.TokenManager{}, &mocks.Storage{}, &mocks.Notifier{})

	user, err := svc.UpdateProfile(ctx, userID, update)
	require.NoError(t, err)
	assert.Equal(t, "Anna", user.FirstName)
}

func TestAccount_UploadAvatar(t *testing.T) {
	ctx := context.Background()

	store := &mocks.UserStore{}
	storage := &mocks.Storage{}

	userID := uuid.New()
	data := []byte("image-bytes")
	url := "http://localhost:9000/account-avatars/avatars/" + userID.String()

	store.On("GetByID", ctx, userID).Return(model.User{ID: userID}, nil).Once()
	storage.On("Upload", mock.Anything, "avatars/"+userID.String(), mock.Anything, int64(len(data)), "image/png").
		Return(url, nil).Once()
	store.On("SetAvatarURL", ctx, userID, url).Return(model.User{ID: userID, AvatarURL: url}, nil).Once()

	svc := newAccountService(store, &mocks.PasswordHasher{}, &mocks.TokenManager{}, storage, &mocks.Notifier{})

	user, err := svc.UploadAvatar(ctx, userID, data, "image/png")
	require.NoError(t, err)
	assert.Equal(t, url, user.AvatarURL)
	storage.AssertExpectations(t)
}

func TestAccount_UploadAvatar_StorageError(t *testing.T) {
	ctx := context.Background()

	store := &mocks.UserStore{}
	storage := &mocks.Storage{}

	userID := uuid.New()
	store.On("GetByID", ctx, userID).Return(model.User{ID: userID, AvatarURL: "http://old"}, nil).Once()
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", assert.AnError).Once()

	svc := newAccountService(store, &mocks.PasswordHasher{}, &mocks.TokenManager{}, storage, &mocks.Notifier{})

	_, err := svc.UploadAvatar(ctx, userID, []byte("image"), "image/png")
	assert.ErrorIs(t, err, model.ErrUploadFailed)
	// Prior avatar reference untouched.
	store.AssertNotCalled(t, "SetAvatarURL", mock.Anything, mock.Anything, mock.Anything)
}
