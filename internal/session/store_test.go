package session

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/lib/token"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

// memStorage — хранилище в памяти для тестов Store.
type memStorage struct {
	token   string
	user    []byte
	loadErr error
	saveErr error
}

func (m *memStorage) Save(tok string, user []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token, m.user = tok, user
	return nil
}

func (m *memStorage) Load() (string, []byte, error) {
	if m.loadErr != nil {
		return "", nil, m.loadErr
	}
	return m.token, m.user, nil
}

func (m *memStorage) Clear() error {
	m.token, m.user = "", nil
	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signTestToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := token.Claims{
		Email: "user@example.com",
		Role:  models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	str, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return str
}

// TestStore_InitEmpty: пустое хранилище даёт неаутентифицированную сессию.
func TestStore_InitEmpty(t *testing.T) {
	store := NewStore(newTestLogger(), &memStorage{})
	store.Init()

	snap := store.Current()
	assert.False(t, snap.IsAuthenticated)
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.User)
	assert.True(t, store.Initialized())
}

// TestStore_InitRestore: валидная запись хранилища восстанавливает сессию.
func TestStore_InitRestore(t *testing.T) {
	tok := signTestToken(t, time.Now().Add(time.Hour))
	storage := &memStorage{
		token: tok,
		user:  []byte(`{"id":1,"email":"user@example.com","first_name":"Ann","role":"USER"}`),
	}
	store := NewStore(newTestLogger(), storage)
	store.Init()

	snap := store.Current()
	require.True(t, snap.IsAuthenticated)
	assert.Equal(t, tok, snap.Token)
	assert.Equal(t, "user@example.com", snap.User.Email)
}

// TestStore_InitIdempotent: повторный Init при неизменном хранилище даёт
// тот же результат.
func TestStore_InitIdempotent(t *testing.T) {
	tok := signTestToken(t, time.Now().Add(time.Hour))
	storage := &memStorage{token: tok, user: []byte(`{"id":1,"email":"a@b.c","role":"USER"}`)}
	store := NewStore(newTestLogger(), storage)

	store.Init()
	first := store.Current()
	store.Init()
	second := store.Current()

	assert.Equal(t, first.Token, second.Token)
	assert.Equal(t, first.IsAuthenticated, second.IsAuthenticated)
	assert.Equal(t, *first.User, *second.User)
}

// TestStore_InitCorruptUser: повреждённая запись пользователя не роняет Init,
// хранилище очищается, сессия остаётся неаутентифицированной.
func TestStore_InitCorruptUser(t *testing.T) {
	storage := &memStorage{
		token: signTestToken(t, time.Now().Add(time.Hour)),
		user:  []byte("{corrupt"),
	}
	store := NewStore(newTestLogger(), storage)
	store.Init()

	assert.False(t, store.Current().IsAuthenticated)
	assert.Empty(t, storage.token)
	assert.Nil(t, storage.user)
}

// TestStore_InitExpiredToken: истёкший токен не восстанавливается.
func TestStore_InitExpiredToken(t *testing.T) {
	storage := &memStorage{
		token: signTestToken(t, time.Now().Add(-time.Hour)),
		user:  []byte(`{"id":1,"email":"a@b.c","role":"USER"}`),
	}
	store := NewStore(newTestLogger(), storage)
	store.Init()

	assert.False(t, store.Current().IsAuthenticated)
	assert.Empty(t, storage.token)
}

// TestStore_InitLoadError: ошибка чтения хранилища трактуется как
// отсутствие сессии.
func TestStore_InitLoadError(t *testing.T) {
	storage := &memStorage{loadErr: errors.New("disk gone")}
	store := NewStore(newTestLogger(), storage)
	store.Init()

	assert.False(t, store.Current().IsAuthenticated)
	assert.True(t, store.Initialized())
}

// TestStore_LoginThenRead: чтение сразу после Login наблюдает новые значения.
func TestStore_LoginThenRead(t *testing.T) {
	storage := &memStorage{}
	store := NewStore(newTestLogger(), storage)
	store.Init()

	user := models.User{ID: 7, Email: "user@example.com", Role: models.RoleUser}
	store.Login("tok-123", user)

	snap := store.Current()
	require.True(t, snap.IsAuthenticated)
	assert.Equal(t, "tok-123", snap.Token)
	assert.Equal(t, user, *snap.User)
	assert.Equal(t, "tok-123", store.Token())

	// Обе записи сохранены.
	assert.Equal(t, "tok-123", storage.token)
	assert.NotEmpty(t, storage.user)
}

// TestStore_LoginStorageError: отказ хранилища не прерывает вход —
// сессия остаётся валидной в памяти.
func TestStore_LoginStorageError(t *testing.T) {
	storage := &memStorage{saveErr: errors.New("readonly fs")}
	store := NewStore(newTestLogger(), storage)
	store.Init()

	store.Login("tok", models.User{Email: "a@b.c"})
	assert.True(t, store.Current().IsAuthenticated)
}

// TestStore_Logout: выход очищает и память, и хранилище.
func TestStore_Logout(t *testing.T) {
	storage := &memStorage{}
	store := NewStore(newTestLogger(), storage)
	store.Init()
	store.Login("tok", models.User{Email: "a@b.c"})

	store.Logout()

	snap := store.Current()
	assert.False(t, snap.IsAuthenticated)
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.User)
	assert.Empty(t, storage.token)
	assert.Nil(t, storage.user)
}

// TestStore_Dispose: после Dispose мутации игнорируются.
func TestStore_Dispose(t *testing.T) {
	store := NewStore(newTestLogger(), &memStorage{})
	store.Init()
	store.Dispose()

	store.Login("tok", models.User{Email: "a@b.c"})
	assert.False(t, store.Current().IsAuthenticated)
}

// TestFileStorage проверяет цикл Save/Load/Clear на настоящих файлах.
func TestFileStorage(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	// Пустой каталог — нет сессии, не ошибка.
	tok, user, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
	assert.Nil(t, user)

	require.NoError(t, storage.Save("tok-1", []byte(`{"id":1}`)))
	tok, user, err = storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, []byte(`{"id":1}`), user)

	require.NoError(t, storage.Clear())
	tok, user, err = storage.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
	assert.Nil(t, user)

	// Повторный Clear не считается ошибкой.
	require.NoError(t, storage.Clear())
}
