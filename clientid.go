package maestro

import (
	"os"

	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// InstallID derives a stable identifier for this client installation, sent as
// X-Client-ID so the backend can correlate requests from one device. The id is
// deterministic for a given host so reinstalls keep their history.
func InstallID() string {
	seed := "maestro-client"
	if host, err := os.Hostname(); err == nil && host != "" {
		seed = host
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		seed += "|" + dir
	}

	if id, err := hashid.NewUUID(seed); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
