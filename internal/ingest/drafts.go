package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/types"
)

const (
	DraftTTL       = 24 * time.Hour
	draftKeyPrefix = "menu:draft:"
)

// DraftStore keeps ingestion results in redis until the owner commits or
// discards them.
type DraftStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewDraftStore(client *redis.Client) *DraftStore {
	return &DraftStore{redis: client, ttl: DraftTTL}
}

func draftKey(id string) string {
	return draftKeyPrefix + id
}

// Save assigns an id and timestamp if missing and stores the draft.
func (s *DraftStore) Save(ctx context.Context, draft *types.MenuDraft) error {
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now().UTC()
	}

	return s.put(ctx, "save draft", draft, s.ttl)
}

// Get returns the draft, or nil if it expired or never existed.
func (s *DraftStore) Get(ctx context.Context, id string) (*types.MenuDraft, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("get draft", err)
	}

	return decodeDraft(data)
}

func decodeDraft(data []byte) (*types.MenuDraft, error) {
	var stored storedDraft
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	draft := stored.MenuDraft
	draft.OwnerID = stored.OwnerID
	return &draft, nil
}

// Claim removes the draft and returns it together with the time it had left,
// so exactly one caller gets to commit it. It returns nil if the draft is gone.
func (s *DraftStore) Claim(ctx context.Context, id string) (*types.MenuDraft, time.Duration, error) {
	var (
		ttl *redis.DurationCmd
		get *redis.StringCmd
	)
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		ttl = pipe.PTTL(ctx, draftKey(id))
		get = pipe.GetDel(ctx, draftKey(id))
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, apperr.Storage("claim draft", err)
	}

	draft, err := decodeDraft([]byte(get.Val()))
	if err != nil {
		return nil, 0, err
	}
	return draft, ttl.Val(), nil
}

// Restore puts back a claimed draft whose commit failed.
func (s *DraftStore) Restore(ctx context.Context, draft *types.MenuDraft, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl
	}
	return s.put(ctx, "restore draft", draft, ttl)
}

func (s *DraftStore) put(ctx context.Context, op string, draft *types.MenuDraft, ttl time.Duration) error {
	data, err := json.Marshal(storedDraft{MenuDraft: *draft, OwnerID: draft.OwnerID})
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.redis.Set(ctx, draftKey(draft.ID), data, ttl).Err(); err != nil {
		return apperr.Storage(op, err)
	}
	return nil
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return apperr.Storage("delete draft", err)
	}
	return nil
}

// storedDraft persists the owner id, which the API representation hides.
type storedDraft struct {
	types.MenuDraft
	OwnerID uint `json:"ownerId"`
}
