// Package redis implements the user store over Redis. Credentials live
// under "visited:auth:<username>", lifecycle metadata (created, last
// login) as JSON under "visited:data:<username>".
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jurdabos/countries-visited/internal/model"
	"github.com/jurdabos/countries-visited/internal/storage"
)

// Store is a Redis-backed implementation of the user store
type Store struct {
	client *redis.Client
	cfg    Config
}

// userData is the JSON document stored under the data key
type userData struct {
	Created   time.Time  `json:"created"`
	LastLogin *time.Time `json:"last_login"`
}

// New creates a new Redis user store
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis user store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ storage.UserStore = (*Store)(nil)

func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(userData{
		Created:   user.Created.UTC(),
		LastLogin: user.LastLogin,
	})
	if err != nil {
		return err
	}

	// Pipeline keeps credential and metadata writes together
	pipe := s.client.Pipeline()
	pipe.Set(ctx, authKey(user.Username), user.PasswordHash, 0)
	pipe.Set(ctx, dataKey(user.Username), data, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) GetUser(ctx context.Context, username string) (*model.User, error) {
	hash, err := s.client.Get(ctx, authKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}

	raw, err := s.client.Get(ctx, dataKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Credentials without metadata still authenticate
			return user, nil
		}
		return nil, err
	}

	var data userData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	user.Created = data.Created
	user.LastLogin = data.LastLogin
	return user, nil
}

func (s *Store) UserExists(ctx context.Context, username string) (bool, error) {
	exists, err := s.client.Exists(ctx, authKey(username)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Store) TouchLastLogin(ctx context.Context, username string, at time.Time) error {
	raw, err := s.client.Get(ctx, dataKey(username)).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	var data userData
	if err == nil {
		if err := json.Unmarshal(raw, &data); err != nil {
			return err
		}
	}

	t := at.UTC()
	data.LastLogin = &t

	updated, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, dataKey(username), updated, 0).Err()
}
