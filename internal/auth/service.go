package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abm32/Neuroshift/internal"
	"github.com/Abm32/Neuroshift/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrInvalidToken       = errors.New("auth: invalid or expired token")
)

// Session is an authenticated identity plus the bearer token that proves it.
type Session struct {
	UserID string
	Token  string
}

// Event is published on every authentication transition. Session is nil on
// sign-out; UserID is always set.
type Event struct {
	UserID  string
	Session *Session
}

// Service owns accounts and live sessions. Tokens are signed JWTs whose jti is
// tracked in memory so that sign-out invalidates them immediately.
type Service struct {
	accounts storage.AccountRepository
	secret   []byte
	ttl      time.Duration
	logger   internal.Logger

	mu      sync.RWMutex
	active  map[string]string // jti -> user id
	subs    map[int]chan Event
	nextSub int
}

func NewService(accounts storage.AccountRepository, secret string, ttl time.Duration, logger internal.Logger) *Service {
	return &Service{
		accounts: accounts,
		secret:   []byte(secret),
		ttl:      ttl,
		logger:   logger,
		active:   make(map[string]string),
		subs:     make(map[int]chan Event),
	}
}

func (s *Service) SignUp(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Errorf("auth: failed to hash password: %v", err)
		return nil, err
	}

	account := &internal.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	return s.openSession(account.ID)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(account.ID)
}

func (s *Service) SignOut(token string) {
	claims, err := s.parseToken(token)
	if err != nil {
		return
	}

	s.mu.Lock()
	userID, ok := s.active[claims.ID]
	if ok {
		delete(s.active, claims.ID)
	}
	s.mu.Unlock()

	if ok {
		s.publish(Event{UserID: userID, Session: nil})
	}
}

// CurrentSession resolves a bearer token to its session, or ErrInvalidToken if
// the token is malformed, expired, or signed out.
func (s *Service) CurrentSession(token string) (*Session, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	s.mu.RLock()
	userID, ok := s.active[claims.ID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidToken
	}
	return &Session{UserID: userID, Token: token}, nil
}

// Subscribe registers a session-change listener. The returned cancel func must
// be called on teardown so the channel does not leak.
func (s *Service) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Service) openSession(userID string) (*Session, error) {
	jti := uuid.NewString()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        jti,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Errorf("auth: failed to sign token: %v", err)
		return nil, err
	}

	s.mu.Lock()
	s.active[jti] = userID
	s.mu.Unlock()

	session := &Session{UserID: userID, Token: token}
	s.publish(Event{UserID: userID, Session: session})
	return session, nil
}

func (s *Service) parseToken(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("auth: unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// publish delivers the event to every subscriber without blocking; a slow
// subscriber with a full buffer misses the event.
func (s *Service) publish(ev Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			s.logger.Warnf("auth: dropping session event for user %s: subscriber buffer full", ev.UserID)
		}
	}
}
