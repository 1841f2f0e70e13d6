package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"intervuehub/models"
)

// Sessions idle longer than this are discarded by Redis.
const sessionTTL = 30 * time.Minute

// Store handles interview-session state in Redis
type Store struct {
	rdb *redis.Client
}

func NewStore() *Store {
	return &Store{rdb: GetRedisClient()}
}

func turnsKey(sessionID string) string {
	return fmt.Sprintf("interview:%s:turns", sessionID)
}

func metaKey(sessionID string) string {
	return fmt.Sprintf("interview:%s:meta", sessionID)
}

// Create starts a new session for a persona and returns its id
func (s *Store) Create(personaID string) (string, error) {
	if s == nil || s.rdb == nil {
		return "", fmt.Errorf("Redis client not available")
	}

	sessionID := uuid.NewString()
	meta := map[string]string{"personaId": personaID}
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session metadata: %w", err)
	}

	if err := s.rdb.Set(GetContext(), metaKey(sessionID), metaBytes, sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return sessionID, nil
}

// PersonaID returns the persona a session was started with
func (s *Store) PersonaID(sessionID string) (string, error) {
	if s == nil || s.rdb == nil {
		return "", fmt.Errorf("Redis client not available")
	}

	raw, err := s.rdb.Get(GetContext(), metaKey(sessionID)).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("session not found: %s", sessionID)
	} else if err != nil {
		return "", err
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return "", fmt.Errorf("failed to parse session metadata: %w", err)
	}
	return meta["personaId"], nil
}

// AppendTurn records one turn and refreshes the session TTL
func (s *Store) AppendTurn(sessionID string, turn models.InterviewTurn) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("Redis client not available")
	}

	payload, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.RPush(GetContext(), turnsKey(sessionID), payload)
	pipe.Expire(GetContext(), turnsKey(sessionID), sessionTTL)
	pipe.Expire(GetContext(), metaKey(sessionID), sessionTTL)
	if _, err := pipe.Exec(GetContext()); err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

// Turns returns all turns recorded for a session, in order
func (s *Store) Turns(sessionID string) ([]models.InterviewTurn, error) {
	if s == nil || s.rdb == nil {
		return nil, fmt.Errorf("Redis client not available")
	}

	raw, err := s.rdb.LRange(GetContext(), turnsKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session turns: %w", err)
	}

	turns := make([]models.InterviewTurn, 0, len(raw))
	for _, item := range raw {
		var turn models.InterviewTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Delete removes all session state
func (s *Store) Delete(sessionID string) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("Redis client not available")
	}
	return s.rdb.Del(GetContext(), turnsKey(sessionID), metaKey(sessionID)).Err()
}
