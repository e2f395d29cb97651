package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/session"
)

const (
	defaultBase = 10
	keyPrefix   = "session:"
)

type config interface {
	Hosts() []string
	SessionTTL() time.Duration
}

// SessionStore keeps conversation sessions in memcached so they survive bot restarts.
// A session untouched for the TTL expires and the user starts over in the menu.
type SessionStore struct {
	client *memcache.Client
	ttl    int32
}

func NewSessionStore(config config) (*SessionStore, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	if err := mc.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot reach memcached")
	}
	return &SessionStore{client: mc, ttl: int32(config.SessionTTL().Seconds())}, nil
}

func formatKey(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, defaultBase)
}

func (s *SessionStore) Get(_ context.Context, userID int64) (session.Session, error) {
	item, err := s.client.Get(formatKey(userID))
	if errors.Is(err, memcache.ErrCacheMiss) {
		return session.New(), nil
	}
	if err != nil {
		return session.Session{}, errors.Wrap(err, "get session")
	}
	return decode(item.Value)
}

func (s *SessionStore) Save(_ context.Context, userID int64, sess session.Session) error {
	value, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "save session")
	}
	err = s.client.Set(&memcache.Item{
		Key:        formatKey(userID),
		Value:      value,
		Expiration: s.ttl,
	})
	return errors.Wrap(err, "save session")
}

func decode(value []byte) (session.Session, error) {
	var sess session.Session
	if err := json.Unmarshal(value, &sess); err != nil {
		return session.Session{}, errors.Wrap(err, "decode session")
	}
	if sess.State == "" {
		sess.State = session.Menu
	}
	if sess.Scratch == nil {
		sess.Scratch = make(map[string]string)
	}
	return sess, nil
}
