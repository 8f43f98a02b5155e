package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"numbergame/internal/domain"
)

// BotIdentity is how the computer presents itself for one strategy.
type BotIdentity struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Strategy    string `json:"strategy"`
}

var defaultIdentities = []BotIdentity{
	{UserID: "computer-optimal", DisplayName: "Computer", Strategy: string(domain.StrategyOptimal)},
	{UserID: "computer-parity", DisplayName: "Computer", Strategy: string(domain.StrategyParity)},
}

var (
	botIdentities []BotIdentity
	botIDMap      map[string]bool
	loadOnce      sync.Once
	loadErr       error
)

// LoadIdentities loads computer profiles from the given path. Strategies missing from the
// file keep their built-in identity.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var loaded []BotIdentity
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		botIdentities = loaded
		botIDMap = make(map[string]bool, len(loaded))
		for _, identity := range loaded {
			if identity.UserID != "" {
				botIDMap[identity.UserID] = true
			}
		}
	})
	return loadErr
}

// IdentityFor returns the identity used for a strategy.
func IdentityFor(strategy domain.Strategy) BotIdentity {
	for _, identity := range botIdentities {
		if identity.Strategy == string(strategy) && identity.UserID != "" {
			return identity
		}
	}
	for _, identity := range defaultIdentities {
		if identity.Strategy == string(strategy) {
			return identity
		}
	}
	return BotIdentity{
		UserID:      "computer-" + string(strategy),
		DisplayName: "Computer",
		Strategy:    string(strategy),
	}
}

// IsBot reports whether the given user ID belongs to the computer.
func IsBot(userID string) bool {
	if botIDMap[userID] {
		return true
	}
	for _, identity := range defaultIdentities {
		if identity.UserID == userID {
			return true
		}
	}
	return false
}
