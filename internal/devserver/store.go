// Package devserver implements a local, in-memory stub of the Bliic remote
// API. It exists so the CLI and SDK can be developed and tested offline; it
// speaks the same wire contract as the hosted service but persists nothing.
package devserver

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bliic/bliic/internal/model"
)

// Store errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrCodeTaken     = errors.New("short code already taken")
	ErrBadCredential = errors.New("incorrect email or password")
)

// userRecord pairs an account with its credential hash.
type userRecord struct {
	user         model.User
	passwordHash string
}

// ownedLink pairs a link with its owning account.
type ownedLink struct {
	link    model.Link
	ownerID string
}

// ownedQRCode pairs a QR code with its owning account.
type ownedQRCode struct {
	code    model.QRCode
	ownerID string
}

// ownedFile pairs a file share with its owning account.
type ownedFile struct {
	file    model.FileShare
	ownerID string
}

// Store is the in-memory state behind the dev server. Collections keep
// insertion order so listings are stable across calls.
type Store struct {
	mu      sync.RWMutex
	users   []*userRecord
	tokens  map[string]string // bearer token -> user id
	links   []*ownedLink
	qrcodes []*ownedQRCode
	files   []*ownedFile
	subs    map[string]*model.Subscription // user id -> subscription
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		tokens: make(map[string]string),
		subs:   make(map[string]*model.Subscription),
	}
}

// CreateUser registers an account. The password is argon2id-hashed.
func (s *Store) CreateUser(email, password, name string, plan model.Plan, role model.Role) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.users {
		if rec.user.Email == email {
			return nil, ErrEmailTaken
		}
	}

	user := model.User{
		ID:    uuid.New().String(),
		Email: email,
		Name:  name,
		Plan:  plan,
		Role:  role,
	}
	s.users = append(s.users, &userRecord{user: user, passwordHash: hash})
	s.subs[user.ID] = &model.Subscription{Plan: plan, Status: model.SubscriptionActive}

	out := user
	return &out, nil
}

// Authenticate verifies credentials and mints a bearer token.
func (s *Store) Authenticate(email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	var rec *userRecord
	for _, r := range s.users {
		if r.user.Email == email {
			rec = r
			break
		}
	}
	if rec == nil {
		return nil, "", ErrBadCredential
	}

	ok, err := verifyPassword(password, rec.passwordHash)
	if err != nil || !ok {
		return nil, "", ErrBadCredential
	}

	token, err := newAccessToken()
	if err != nil {
		return nil, "", err
	}
	s.tokens[token] = rec.user.ID

	out := rec.user
	return &out, token, nil
}

// UserByToken resolves a bearer token to its account.
func (s *Store) UserByToken(token string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.tokens[token]
	if !ok {
		return nil, ErrNotFound
	}
	for _, rec := range s.users {
		if rec.user.ID == id {
			out := rec.user
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// Users returns all accounts in registration order.
func (s *Store) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, 0, len(s.users))
	for _, rec := range s.users {
		out = append(out, rec.user)
	}
	return out
}

// UpdateUser applies plan/role changes to an account.
func (s *Store) UpdateUser(id string, plan *model.Plan, role *model.Role) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.users {
		if rec.user.ID != id {
			continue
		}
		if plan != nil {
			rec.user.Plan = *plan
			if sub, ok := s.subs[id]; ok {
				sub.Plan = *plan
			}
		}
		if role != nil {
			rec.user.Role = *role
		}
		out := rec.user
		return &out, nil
	}
	return nil, ErrNotFound
}

// CreateLink stores a link for the given owner.
func (s *Store) CreateLink(ownerID, destination, customCode, title string, expiresAt *time.Time, baseURL string) (*model.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := customCode
	if code != "" {
		for _, l := range s.links {
			if l.link.ShortCode == code {
				return nil, ErrCodeTaken
			}
		}
	} else {
		var err error
		code, err = s.uniqueShortCodeLocked()
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	link := model.Link{
		ID:          uuid.New().String(),
		ShortCode:   code,
		ShortURL:    baseURL + "/" + code,
		Destination: destination,
		Title:       title,
		Enabled:     true,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.links = append(s.links, &ownedLink{link: link, ownerID: ownerID})

	out := link
	return &out, nil
}

// uniqueShortCodeLocked generates a short code not yet in use.
// Caller must hold the write lock.
func (s *Store) uniqueShortCodeLocked() (string, error) {
	for i := 0; i < 5; i++ {
		code, err := newShortCode()
		if err != nil {
			return "", err
		}
		taken := false
		for _, l := range s.links {
			if l.link.ShortCode == code {
				taken = true
				break
			}
		}
		if !taken {
			return code, nil
		}
	}
	return "", errors.New("could not generate unique short code")
}

// LinksByOwner returns the owner's links in creation order.
func (s *Store) LinksByOwner(ownerID string) []model.Link {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Link
	for _, l := range s.links {
		if l.ownerID == ownerID {
			out = append(out, l.link)
		}
	}
	return out
}

// LinkByID returns a link if it belongs to the owner.
func (s *Store) LinkByID(ownerID, id string) (*model.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.links {
		if l.link.ID == id && l.ownerID == ownerID {
			out := l.link
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateLink applies a partial update to an owned link.
func (s *Store) UpdateLink(ownerID, id string, destination, title *string, enabled *bool, expiresAt *time.Time) (*model.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.links {
		if l.link.ID != id || l.ownerID != ownerID {
			continue
		}
		if destination != nil {
			l.link.Destination = *destination
		}
		if title != nil {
			l.link.Title = *title
		}
		if enabled != nil {
			l.link.Enabled = *enabled
		}
		if expiresAt != nil {
			l.link.ExpiresAt = expiresAt
		}
		l.link.UpdatedAt = time.Now().UTC()
		out := l.link
		return &out, nil
	}
	return nil, ErrNotFound
}

// DeleteLink removes an owned link.
func (s *Store) DeleteLink(ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.links {
		if l.link.ID == id && l.ownerID == ownerID {
			s.links = append(s.links[:i], s.links[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// CreateQRCode stores a QR code for the given owner.
func (s *Store) CreateQRCode(ownerID, data, label string, format model.QRFormat, baseURL string) *model.QRCode {
	if !format.IsValid() {
		format = model.QRFormatPNG
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code := model.QRCode{
		ID:        uuid.New().String(),
		Label:     label,
		Data:      data,
		Format:    format,
		CreatedAt: time.Now().UTC(),
	}
	code.ImageURL = baseURL + "/q/" + code.ID + "." + string(format)
	s.qrcodes = append(s.qrcodes, &ownedQRCode{code: code, ownerID: ownerID})

	out := code
	return &out
}

// QRCodesByOwner returns the owner's QR codes in creation order.
func (s *Store) QRCodesByOwner(ownerID string) []model.QRCode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.QRCode
	for _, q := range s.qrcodes {
		if q.ownerID == ownerID {
			out = append(out, q.code)
		}
	}
	return out
}

// DeleteQRCode removes an owned QR code.
func (s *Store) DeleteQRCode(ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, q := range s.qrcodes {
		if q.code.ID == id && q.ownerID == ownerID {
			s.qrcodes = append(s.qrcodes[:i], s.qrcodes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// AddFile seeds a file share record. There is no upload path on the dev
// server; file bytes are a hosted-service concern.
func (s *Store) AddFile(ownerID, fileName, contentType string, size int64, baseURL string) *model.FileShare {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := model.FileShare{
		ID:          uuid.New().String(),
		FileName:    fileName,
		Size:        size,
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
	}
	file.ShortURL = baseURL + "/f/" + file.ID
	s.files = append(s.files, &ownedFile{file: file, ownerID: ownerID})

	out := file
	return &out
}

// FilesByOwner returns the owner's file shares in creation order.
func (s *Store) FilesByOwner(ownerID string) []model.FileShare {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.FileShare
	for _, f := range s.files {
		if f.ownerID == ownerID {
			out = append(out, f.file)
		}
	}
	return out
}

// FileByID returns a file share if it belongs to the owner.
func (s *Store) FileByID(ownerID, id string) (*model.FileShare, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.files {
		if f.file.ID == id && f.ownerID == ownerID {
			out := f.file
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteFile removes an owned file share.
func (s *Store) DeleteFile(ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.files {
		if f.file.ID == id && f.ownerID == ownerID {
			s.files = append(s.files[:i], s.files[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// SubscriptionFor returns the account's subscription, defaulting to an
// active free plan.
func (s *Store) SubscriptionFor(userID string) *model.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sub, ok := s.subs[userID]; ok {
		out := *sub
		return &out
	}
	return &model.Subscription{Plan: model.PlanFree, Status: model.SubscriptionActive}
}
