package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "account-manager-api/internal/domain/account"
	"account-manager-api/internal/infrastructure/mq"
)

type FakeRepository struct {
	CreateAccountFunc       func(ctx context.Context, req domain.Account) (*domain.Account, error)
	FetchAccountByIDFunc    func(ctx context.Context, id domain.ID) (*domain.Account, error)
	FetchAccountByPhoneFunc func(ctx context.Context, phone string) (*domain.Account, error)
	FetchAccountsFunc       func(ctx context.Context) (domain.Accounts, error)
	UpdateAccountFunc       func(ctx context.Context, id domain.ID, patch domain.Patch) (*domain.Account, error)
	DeleteAccountFunc       func(ctx context.Context, id domain.ID) (*domain.Account, error)
}

func (f *FakeRepository) CreateAccount(ctx context.Context, req domain.Account) (*domain.Account, error) {
	if f.CreateAccountFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateAccountFunc(ctx, req)
}
func (f *FakeRepository) FetchAccountByID(ctx context.Context, id domain.ID) (*domain.Account, error) {
	if f.FetchAccountByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchAccountByIDFunc(ctx, id)
}
func (f *FakeRepository) FetchAccountByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	if f.FetchAccountByPhoneFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchAccountByPhoneFunc(ctx, phone)
}
func (f *FakeRepository) FetchAccounts(ctx context.Context) (domain.Accounts, error) {
	if f.FetchAccountsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchAccountsFunc(ctx)
}
func (f *FakeRepository) UpdateAccount(ctx context.Context, id domain.ID, patch domain.Patch) (*domain.Account, error) {
	if f.UpdateAccountFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateAccountFunc(ctx, id, patch)
}
func (f *FakeRepository) DeleteAccount(ctx context.Context, id domain.ID) (*domain.Account, error) {
	if f.DeleteAccountFunc == nil {
		return nil, errors.New("not used")
	}
	return f.DeleteAccountFunc(ctx, id)
}

type FakeMQ struct {
	in chan mq.Event
}

func newFakeMQ() *FakeMQ { return &FakeMQ{in: make(chan mq.Event, 8)} }

func (f *FakeMQ) Connect(_ context.Context, _ string) error { return nil }
func (f *FakeMQ) Init() error                               { return nil }
func (f *FakeMQ) PublisherWorker(_ context.Context)         {}
func (f *FakeMQ) GetInputChan() chan mq.Event               { return f.in }
func (f *FakeMQ) GetConn() *amqp091.Connection              { return nil }

func newTestService(repo *FakeRepository) (*AccountService, *FakeMQ) {
	fmq := newFakeMQ()
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_counters"},
		[]string{"result"},
	)
	svc := NewAccountService(repo, fmq, counter).(*AccountService)

	return svc, fmq
}

func someAccount() *domain.Account {
	return &domain.Account{
		ID:           uuid.New(),
		FirstName:    "Anna",
		LastName:     "Karimova",
		Birthday:     time.Date(1990, 2, 15, 0, 0, 0, 0, time.UTC),
		Phone:        "+998901234567",
		PasswordHash: "$2a$12$not-a-real-hash",
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

func validRegistration() domain.Registration {
	return domain.Registration{
		FirstName: "Anna",
		Birthday:  time.Date(1990, 2, 15, 0, 0, 0, 0, time.UTC),
		Phone:     "+998901234567",
		Password:  "pass12",
	}
}

func TestAccountService_Register(t *testing.T) {
	t.Run("success hashes password, defaults role and strips hash", func(t *testing.T) {
		var stored domain.Account
		repo := &FakeRepository{
			FetchAccountByPhoneFunc: func(ctx context.Context, phone string) (*domain.Account, error) {
				return nil, nil
			},
			CreateAccountFunc: func(ctx context.Context, req domain.Account) (*domain.Account, error) {
				stored = req
				a := req
				a.ID = uuid.New()
				a.CreatedAt = time.Now().UTC()
				a.UpdatedAt = a.CreatedAt
				return &a, nil
			},
		}
		svc, fmq := newTestService(repo)

		v, err := svc.Register(context.Background(), validRegistration())
		require.NoError(t, err)
		require.NotNil(t, v)

		assert.Equal(t, "+998901234567", v.Phone)
		assert.Equal(t, domain.RoleUser, v.Role)
		assert.Equal(t, "1990-02-15", v.Birthday)

		// the stored hash verifies the raw password and nothing else
		assert.NotEqual(t, "pass12", stored.PasswordHash)
		assert.True(t, VerifyPassword("pass12", stored.PasswordHash))
		assert.False(t, VerifyPassword("pass13", stored.PasswordHash))

		b, err := json.Marshal(v)
		require.NoError(t, err)
		assert.NotContains(t, strings.ToLower(string(b)), "password")

		e := <-fmq.GetInputChan()
		assert.Equal(t, "POST", e.Method)
		assert.Equal(t, v.ID.String(), e.AccountID)
	})

	t.Run("explicit role survives", func(t *testing.T) {
		repo := &FakeRepository{
			FetchAccountByPhoneFunc: func(ctx context.Context, phone string) (*domain.Account, error) {
				return nil, nil
			},
			CreateAccountFunc: func(ctx context.Context, req domain.Account) (*domain.Account, error) {
				a := req
				a.ID = uuid.New()
				return &a, nil
			},
		}
		svc, _ := newTestService(repo)

		in := validRegistration()
		in.Role = domain.RoleAdmin
		v, err := svc.Register(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, v.Role)
	})

	t.Run("duplicate phone caught by pre-check", func(t *testing.T) {
		repo := &FakeRepository{
			FetchAccountByPhoneFunc: func(ctx context.Context, phone string) (*domain.Account, error) {
				return someAccount(), nil
			},
		}
		svc, _ := newTestService(repo)

		v, err := svc.Register(context.Background(), validRegistration())
		require.ErrorIs(t, err, domain.ErrPhoneAlreadyExists)
		assert.Nil(t, v)
	})

	t.Run("duplicate phone caught only by the store constraint", func(t *testing.T) {
		// both concurrent registrations passed the pre-check; the unique
		// index rejected this one and the outcome is the same error
		repo := &FakeRepository{
			FetchAccountByPhoneFunc: func(ctx context.Context, phone string) (*domain.Account, error) {
				return nil, nil
			},
			CreateAccountFunc: func(ctx context.Context, req domain.Account) (*domain.Account, error) {
				return nil, domain.ErrPhoneAlreadyExists
			},
		}
		svc, _ := newTestService(repo)

		v, err := svc.Register(context.Background(), validRegistration())
		require.ErrorIs(t, err, domain.ErrPhoneAlreadyExists)
		assert.Nil(t, v)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		repo := &FakeRepository{
			FetchAccountByPhoneFunc: func(ctx context.Context, phone string) (*domain.Account, error) {
				return nil, errors.New("db down")
			},
		}
		svc, _ := newTestService(repo)

		_, err := svc.Register(context.Background(), validRegistration())
		require.EqualError(t, err, "db down")
	})
}

func TestAccountService_FindAccounts(t *testing.T) {
	a1, a2 := someAccount(), someAccount()
	a2.Phone = "+998907654321"

	repo := &FakeRepository{
		FetchAccountsFunc: func(ctx context.Context) (domain.Accounts, error) {
			return domain.Accounts{a1, a2}, nil
		},
	}
	svc, _ := newTestService(repo)

	views, err := svc.FindAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	// store ordering preserved, hashes stripped from every record
	assert.Equal(t, a1.ID, views[0].ID)
	assert.Equal(t, a2.ID, views[1].ID)
	b, err := json.Marshal(views)
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(b)), "password")
}

func TestAccountService_FindAccountByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := &FakeRepository{
			FetchAccountByIDFunc: func(ctx context.Context, id domain.ID) (*domain.Account, error) {
				return nil, nil
			},
		}
		svc, _ := newTestService(repo)

		_, err := svc.FindAccountByID(context.Background(), uuid.New())
		require.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("success", func(t *testing.T) {
		a := someAccount()
		repo := &FakeRepository{
			FetchAccountByIDFunc: func(ctx context.Context, id domain.ID) (*domain.Account, error) {
				return a, nil
			},
		}
		svc, _ := newTestService(repo)

		v, err := svc.FindAccountByID(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, v.ID)
		assert.Equal(t, a.Phone, v.Phone)
	})
}

func TestAccountService_UpdateAccount(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("not found", func(t *testing.T) {
		repo := &FakeRepository{
			FetchAccountByIDFunc: func(ctx context.Context, id domain.ID) (*domain.Account, error) {
				return nil, nil
			},
		}
		svc, _ := newTestService(repo)

		_, err := svc.UpdateAccount(context.Background(), uuid.New(), domain.Patch{})
		require.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("phone change to a taken number conflicts", func(t *testing.T) {
		a := someAccount()
		other := someAccount()
		other.Phone = "+998907654321"
		repo := &FakeRepository{
			FetchAccountByIDFunc: func(ctx context.Context, id domain.ID) (*domain.Account, error) {
				return a, nil
			},
			FetchAccountByPhoneFunc: func(ctx context.Context, phone string) (*domain.Account, error) {
				require.Equal(t, other.Phone, phone)
				return other, nil
			},
		}
		svc, _ := newTestService(repo)

		_, err := svc.UpdateAccount(context.Background(), a.ID, domain.Patch{Phone: strPtr(other.Phone)})
		require.ErrorIs(t, err, domain.ErrPhoneAlreadyExists)
	})

	t.Run("same phone skips the duplicate check", func(t *testing.T) {
		a := someAccount()
		repo := &FakeRepository{
			FetchAccountByIDFunc: func(ctx context.Context, id domain.ID) (*domain.Account, error) {
				return a, nil
			},
			// FetchAccountByPhoneFunc left nil: calling it fails the test
			UpdateAccountFunc: func(ctx context.Context, id domain.ID, patch domain.Patch) (*domain.Account, error) {
				return a, nil
			},
		}
		svc, _ := newTestService(repo)

		_, err := svc.UpdateAccount(context.Background(), a.ID, domain.Patch{Phone: strPtr(a.Phone)})
		require.NoError(t, err)
	})

	t.Run("password is re-hashed before the store sees it", func(t *testing.T) {
		a := someAccount()
		var gotPatch domain.Patch
		repo := &FakeRepository{
			FetchAccountByIDFunc: func(ctx context.Context, id domain.ID) (*domain.Account, error) {
				return a, nil
			},
			UpdateAccountFunc: func(ctx context.Context, id domain.ID, patch domain.Patch) (*domain.Account, error) {
				gotPatch = patch
				return a, nil
			},
		}
		svc, _ := newTestService(repo)

		_, err := svc.UpdateAccount(context.Background(), a.ID, domain.Patch{Password: strPtr("newpass1")})
		require.NoError(t, err)

		assert.Nil(t, gotPatch.Password)
		require.NotNil(t, gotPatch.PasswordHash)
		assert.True(t, VerifyPassword("newpass1", *gotPatch.PasswordHash))
	})

	t.Run("partial patch passes only supplied fields through", func(t *testing.T) {
		a := someAccount()
		var gotPatch domain.Patch
		repo := &FakeRepository{
			FetchAccountByIDFunc: func(ctx context.Context, id domain.ID) (*domain.Account, error) {
				return a, nil
			},
			UpdateAccountFunc: func(ctx context.Context, id domain.ID, patch domain.Patch) (*domain.Account, error) {
				gotPatch = patch
				updated := *a
				updated.FirstName = *patch.FirstName
				updated.UpdatedAt = time.Now().UTC()
				return &updated, nil
			},
		}
		svc, _ := newTestService(repo)

		v, err := svc.UpdateAccount(context.Background(), a.ID, domain.Patch{FirstName: strPtr("Malika")})
		require.NoError(t, err)

		assert.Equal(t, "Malika", v.FirstName)
		assert.Equal(t, a.Phone, v.Phone)
		assert.Nil(t, gotPatch.LastName)
		assert.Nil(t, gotPatch.Birthday)
		assert.Nil(t, gotPatch.Phone)
		assert.Nil(t, gotPatch.PasswordHash)
		assert.Nil(t, gotPatch.Role)
	})

	t.Run("empty patch still succeeds", func(t *testing.T) {
		a := someAccount()
		repo := &FakeRepository{
			FetchAccountByIDFunc: func(ctx context.Context, id domain.ID) (*domain.Account, error) {
				return a, nil
			},
			UpdateAccountFunc: func(ctx context.Context, id domain.ID, patch domain.Patch) (*domain.Account, error) {
				return a, nil
			},
		}
		svc, fmq := newTestService(repo)

		v, err := svc.UpdateAccount(context.Background(), a.ID, domain.Patch{})
		require.NoError(t, err)
		assert.Equal(t, a.FirstName, v.FirstName)

		e := <-fmq.GetInputChan()
		assert.Equal(t, "PATCH", e.Method)
	})

	t.Run("row deleted between fetch and update", func(t *testing.T) {
		a := someAccount()
		repo := &FakeRepository{
			FetchAccountByIDFunc: func(ctx context.Context, id domain.ID) (*domain.Account, error) {
				return a, nil
			},
			UpdateAccountFunc: func(ctx context.Context, id domain.ID, patch domain.Patch) (*domain.Account, error) {
				return nil, nil
			},
		}
		svc, _ := newTestService(repo)

		_, err := svc.UpdateAccount(context.Background(), a.ID, domain.Patch{FirstName: strPtr("Malika")})
		require.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestAccountService_DeleteAccount(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := &FakeRepository{
			DeleteAccountFunc: func(ctx context.Context, id domain.ID) (*domain.Account, error) {
				return nil, nil
			},
		}
		svc, _ := newTestService(repo)

		_, err := svc.DeleteAccount(context.Background(), uuid.New())
		require.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("success returns the last known view", func(t *testing.T) {
		a := someAccount()
		repo := &FakeRepository{
			DeleteAccountFunc: func(ctx context.Context, id domain.ID) (*domain.Account, error) {
				return a, nil
			},
		}
		svc, fmq := newTestService(repo)

		v, err := svc.DeleteAccount(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, v.ID)
		assert.Equal(t, a.Phone, v.Phone)

		e := <-fmq.GetInputChan()
		assert.Equal(t, "DELETE", e.Method)
	})
}

func TestVerifyCredential(t *testing.T) {
	hash, err := HashPassword("pass12")
	require.NoError(t, err)

	repo := &FakeRepository{}
	svc, _ := newTestService(repo)

	assert.True(t, svc.VerifyCredential("pass12", hash))
	assert.False(t, svc.VerifyCredential("pass13", hash))
	assert.False(t, svc.VerifyCredential("pass1", hash))
	assert.False(t, svc.VerifyCredential("", hash))
	assert.False(t, svc.VerifyCredential("pass12", ""))
}
