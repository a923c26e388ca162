package uid

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateGameID returns a random identifier for a new game. Clients use it
// to drop state pushes that belong to a game they no longer display.
func GenerateGameID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
