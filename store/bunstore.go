package store

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const (
	credentialKey  = "credential"
	preferencesKey = "preferences"
)

// ClientStateModel is the Bun model for the client state table. It is a small
// key-value table holding the sealed credential and the preferences blob.
type ClientStateModel struct {
	bun.BaseModel `bun:"table:client_state"`

	Key       string    `bun:"key,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// BunStore persists client state in SQLite through Bun. The credential is
// sealed at rest when a SecretBox is provided.
type BunStore struct {
	db  *bun.DB
	box *SecretBox
}

type BunOption func(*BunStore)

// WithSecretBox seals the credential value before it hits the database.
func WithSecretBox(box *SecretBox) BunOption {
	return func(s *BunStore) {
		s.box = box
	}
}

func NewBunStore(db *bun.DB, opts ...BunOption) *BunStore {
	s := &BunStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenSQLite opens a SQLite database for client state.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "open database")
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// Init creates the client state table if it does not exist.
func (s *BunStore) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*ClientStateModel)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "create client state table")
	}
	return nil
}

func (s *BunStore) Load() (string, error) {
	value, err := s.get(context.Background(), credentialKey)
	if err != nil {
		return "", err
	}
	if value == "" || s.box == nil {
		return value, nil
	}

	blob, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "decode credential")
	}

	token, err := s.box.Open(blob)
	if err != nil {
		return "", err
	}
	return string(token), nil
}

func (s *BunStore) Save(token string) error {
	value := token
	if s.box != nil {
		blob, err := s.box.Seal([]byte(token))
		if err != nil {
			return err
		}
		value = base64.StdEncoding.EncodeToString(blob)
	}
	return s.put(context.Background(), credentialKey, value)
}

func (s *BunStore) Clear() error {
	return s.delete(context.Background(), credentialKey)
}

// SavePreferences stores the preferences blob. Preferences are independent of
// the credential: clearing one leaves the other untouched.
func (s *BunStore) SavePreferences(ctx context.Context, prefs map[string]any) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "marshal preferences")
	}
	return s.put(ctx, preferencesKey, string(data))
}

// Preferences returns the stored preferences blob, or an empty map when none
// has been saved.
func (s *BunStore) Preferences(ctx context.Context) (map[string]any, error) {
	value, err := s.get(ctx, preferencesKey)
	if err != nil {
		return nil, err
	}

	prefs := map[string]any{}
	if value == "" {
		return prefs, nil
	}

	if err := json.Unmarshal([]byte(value), &prefs); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "parse preferences")
	}
	return prefs, nil
}

// ClearPreferences removes the preferences blob.
func (s *BunStore) ClearPreferences(ctx context.Context) error {
	return s.delete(ctx, preferencesKey)
}

func (s *BunStore) get(ctx context.Context, key string) (string, error) {
	var model ClientStateModel
	err := s.db.NewSelect().
		Model(&model).
		Where("key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "load client state")
	}
	return model.Value, nil
}

func (s *BunStore) put(ctx context.Context, key, value string) error {
	model := &ClientStateModel{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	_, err := s.db.NewInsert().
		Model(model).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "save client state")
	}
	return nil
}

func (s *BunStore) delete(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*ClientStateModel)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "clear client state")
	}
	return nil
}
