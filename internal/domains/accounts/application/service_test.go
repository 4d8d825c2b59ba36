package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/voltshop/storefront-api/internal/domains/accounts/domain"
	"github.com/voltshop/storefront-api/internal/domains/accounts/ports"
)

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[uuid.UUID]*domain.Account{}}
}

func (f *fakeAccountRepo) Save(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for id, existing := range f.accounts {
		if existing.Email == account.Email && id != account.ID {
			return nil, ports.ErrEmailTaken
		}
	}
	clone := *account
	f.accounts[clone.ID] = &clone
	copied := clone
	return &copied, nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	if a, ok := f.accounts[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (f *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.accounts[id]; !ok {
		return ports.ErrNotFound
	}
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountRepo) List(_ context.Context) ([]*domain.Account, error) {
	var list []*domain.Account
	for _, a := range f.accounts {
		clone := *a
		list = append(list, &clone)
	}
	return list, nil
}

type staticTokens struct{}

func (staticTokens) Issue(accountID uuid.UUID) (string, error) { return "tok-" + accountID.String(), nil }

func (staticTokens) Verify(token string) (uuid.UUID, error) {
	return uuid.Nil, ports.ErrInvalidToken
}

func TestRegister_HashesCredentialAndIssuesToken(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo, staticTokens{})

	session, err := svc.Register(context.Background(), "Jane Buyer", "jane@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.False(t, session.Account.Admin)
	require.NotEqual(t, "hunter22", session.Account.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(session.Account.PasswordHash), []byte("hunter22")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo, staticTokens{})

	_, err := svc.Register(context.Background(), "Jane", "jane@example.com", "hunter22")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "Impostor", "jane@example.com", "hunter23")
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := NewService(newFakeAccountRepo(), staticTokens{})
	_, err := svc.Register(context.Background(), "Jane", "jane@example.com", "abc")
	require.ErrorIs(t, err, domain.ErrWeakPassword)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_VerifiesCredential(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo, staticTokens{})

	_, err := svc.Register(context.Background(), "Jane", "jane@example.com", "hunter22")
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), "jane@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", session.Account.Email)

	_, err = svc.Login(context.Background(), "jane@example.com", "wrong-password")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestUpdateProfile_RehashesOnlyWhenPasswordChanges(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo, staticTokens{})

	session, err := svc.Register(context.Background(), "Jane", "jane@example.com", "hunter22")
	require.NoError(t, err)
	originalHash := session.Account.PasswordHash

	updated, err := svc.UpdateProfile(context.Background(), session.Account.ID, ports.ProfileUpdate{Name: "Jane B."})
	require.NoError(t, err)
	require.Equal(t, "Jane B.", updated.Name)
	require.Equal(t, originalHash, updated.PasswordHash)

	updated, err = svc.UpdateProfile(context.Background(), session.Account.ID, ports.ProfileUpdate{Password: "new-secret"})
	require.NoError(t, err)
	require.NotEqual(t, originalHash, updated.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new-secret")))
}

func TestDelete_AdminCannotDeleteOwnAccount(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo, staticTokens{})

	admin, err := svc.Register(context.Background(), "Root", "root@example.com", "hunter22")
	require.NoError(t, err)
	other, err := svc.Register(context.Background(), "Jane", "jane@example.com", "hunter22")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), admin.Account.ID, admin.Account.ID)
	require.ErrorIs(t, err, ErrSelfDelete)

	err = svc.Delete(context.Background(), admin.Account.ID, other.Account.ID)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), other.Account.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSetRole_TogglesAdminFlag(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo, staticTokens{})

	session, err := svc.Register(context.Background(), "Jane", "jane@example.com", "hunter22")
	require.NoError(t, err)

	promoted, err := svc.SetRole(context.Background(), session.Account.ID, true)
	require.NoError(t, err)
	require.True(t, promoted.Admin)
}
