package services_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/citizen_accounts/internal/core/ports/repositories"
)

type connKey struct {
	provider domain.ConnectionID
	subject  string
}

type consentKey struct {
	userID    string
	partnerID string
}

// memState is everything the store holds. It is copied on transaction begin so a
// failed transaction can be undone.
type memState struct {
	users       map[string]domain.User
	connections map[connKey]domain.UserConnection
	partners    map[string]domain.ConsentListItem
	consents    map[consentKey]domain.UserConsent
	consentSeq  []consentKey
	activities  []domain.Activity
}

func (s memState) clone() memState {
	c := memState{
		users:       make(map[string]domain.User, len(s.users)),
		connections: make(map[connKey]domain.UserConnection, len(s.connections)),
		partners:    make(map[string]domain.ConsentListItem, len(s.partners)),
		consents:    make(map[consentKey]domain.UserConsent, len(s.consents)),
		consentSeq:  append([]consentKey(nil), s.consentSeq...),
		activities:  append([]domain.Activity(nil), s.activities...),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.connections {
		c.connections[k] = v
	}
	for k, v := range s.partners {
		c.partners[k] = v
	}
	for k, v := range s.consents {
		c.consents[k] = v
	}
	return c
}

// memStore is an in-memory, transactional implementation of the repository ports.
// Transactions are serialized and roll back every change when fn fails.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   memState

	writes int

	// outside holds commits made by "other sessions"; they survive a rollback.
	outside []func(*memState)

	// fault injection
	failCreateConnection error
	failUpdateImage      error
	failSaveActivity     error
	beforeCreateConn     func()
}

func newMemStore() *memStore {
	return &memStore{st: memState{}.clone()}
}

func (m *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:      m,
		UserRepo:       m,
		ConnectionRepo: m,
		ConsentRepo:    m,
		ActivityRepo:   m,
	}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapshot := m.st.clone()
	writes := m.writes
	outside := len(m.outside)
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.st = snapshot
		m.writes = writes
		for _, apply := range m.outside[outside:] {
			apply(&m.st)
		}
		m.mu.Unlock()
		return err
	}
	return nil
}

// --- users ---

func (m *memStore) findUserLocked(match func(domain.User) bool) (*domain.User, error) {
	for _, u := range m.st.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findUserLocked(func(u domain.User) bool { return u.UserID == userID })
}

func (m *memStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findUserLocked(func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (m *memStore) FindUserByVerificationCode(ctx context.Context, code string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findUserLocked(func(u domain.User) bool { return u.EmailVerificationCode == code })
}

func (m *memStore) SaveUser(ctx context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.findUserLocked(func(u domain.User) bool { return strings.EqualFold(u.Email, user.Email) }); err == nil {
		return apperrors.NewDuplicateError("a user with email " + user.Email + " already exists")
	}
	m.writes++
	m.st.users[user.UserID] = user
	return nil
}

func (m *memStore) FindOrCreateUserByEmail(ctx context.Context, defaults domain.User) (*domain.User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, err := m.findUserLocked(func(u domain.User) bool { return strings.EqualFold(u.Email, defaults.Email) }); err == nil {
		return existing, false, nil
	}
	m.writes++
	m.st.users[defaults.UserID] = defaults
	created := defaults
	return &created, true, nil
}

func (m *memStore) UpdateUserProfile(ctx context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.st.users[user.UserID]; !ok {
		return apperrors.ErrNotFound
	}
	m.writes++
	m.st.users[user.UserID] = user
	return nil
}

func (m *memStore) UpdateUserImage(ctx context.Context, userID string, imageURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdateImage != nil {
		return m.failUpdateImage
	}
	u, ok := m.st.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	m.writes++
	u.ImageURL = &imageURL
	u.UpdatedAt = time.Now().UTC()
	m.st.users[userID] = u
	return nil
}

func (m *memStore) MarkEmailVerified(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.st.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	m.writes++
	u.EmailIsVerified = true
	m.st.users[userID] = u
	return nil
}

// --- connections ---

func (m *memStore) FindConnectionWithUser(ctx context.Context, connectionID domain.ConnectionID, connectionUserID string) (*domain.UserConnection, *domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.st.connections[connKey{connectionID, connectionUserID}]
	if !ok {
		return nil, nil, apperrors.ErrNotFound
	}
	u := m.st.users[conn.UserID]
	return &conn, &u, nil
}

func (m *memStore) CreateConnection(ctx context.Context, conn domain.UserConnection) error {
	if m.beforeCreateConn != nil {
		m.beforeCreateConn()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreateConnection != nil {
		return m.failCreateConnection
	}
	key := connKey{conn.ConnectionID, conn.ConnectionUserID}
	if _, ok := m.st.connections[key]; ok {
		return apperrors.NewConflictError("connection already exists")
	}
	m.writes++
	m.st.connections[key] = conn
	return nil
}

// commitConcurrently simulates another request committing a user and its link
// while a transaction is open.
func (m *memStore) commitConcurrently(user domain.User, conn domain.UserConnection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	apply := func(st *memState) {
		st.users[user.UserID] = user
		st.connections[connKey{conn.ConnectionID, conn.ConnectionUserID}] = conn
	}
	apply(&m.st)
	m.outside = append(m.outside, apply)
}

// --- consents ---

func (m *memStore) addPartner(id, website string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	m.st.partners[id] = domain.ConsentListItem{PartnerID: id, Website: &website, CreatedAt: &now, UpdatedAt: &now}
}

func (m *memStore) InsertConsentIfAbsent(ctx context.Context, consent domain.UserConsent) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.st.partners[consent.PartnerID]; !ok {
		return false, apperrors.NewNotFoundError("partner " + consent.PartnerID + " does not exist")
	}
	key := consentKey{consent.UserID, consent.PartnerID}
	if existing, ok := m.st.consents[key]; ok {
		if existing.DeletedAt == nil {
			return false, nil
		}
		existing.DeletedAt = nil
		existing.UpdatedAt = consent.UpdatedAt
		m.writes++
		m.st.consents[key] = existing
		return true, nil
	}
	m.writes++
	m.st.consents[key] = consent
	m.st.consentSeq = append(m.st.consentSeq, key)
	return true, nil
}

func (m *memStore) DeleteConsent(ctx context.Context, userID, partnerID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := consentKey{userID, partnerID}
	if _, ok := m.st.consents[key]; !ok {
		return 0, nil
	}
	m.writes++
	delete(m.st.consents, key)
	for i, k := range m.st.consentSeq {
		if k == key {
			m.st.consentSeq = append(m.st.consentSeq[:i], m.st.consentSeq[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (m *memStore) ListConsents(ctx context.Context, userID string) ([]domain.ConsentListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []domain.ConsentListItem
	for _, key := range m.st.consentSeq {
		c := m.st.consents[key]
		if key.userID != userID || c.DeletedAt != nil {
			continue
		}
		items = append(items, m.st.partners[key.partnerID])
	}
	return items, nil
}

// softDeleteConsent marks a consent as logically deleted.
func (m *memStore) softDeleteConsent(userID, partnerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := consentKey{userID, partnerID}
	c := m.st.consents[key]
	now := time.Now().UTC()
	c.DeletedAt = &now
	m.st.consents[key] = c
}

// --- activities ---

func (m *memStore) SaveActivity(ctx context.Context, activity domain.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSaveActivity != nil {
		return m.failSaveActivity
	}
	m.writes++
	m.st.activities = append(m.st.activities, activity)
	return nil
}

// --- inspection helpers ---

func (m *memStore) userCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.st.users)
}

func (m *memStore) connectionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.st.connections)
}

func (m *memStore) connection(provider domain.ConnectionID, subject string) (domain.UserConnection, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.st.connections[connKey{provider, subject}]
	return c, ok
}

func (m *memStore) activityList() []domain.Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Activity(nil), m.st.activities...)
}

func (m *memStore) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *memStore) seedUser(u domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.users[u.UserID] = u
}
