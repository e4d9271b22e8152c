// Package usernamer derives a candidate login name from a verified contact
// identifier (email address or phone number) and resolves collisions against
// an existing-username registry by appending numeric suffixes.
package usernamer

import (
	"context"

	"github.com/google/uuid"

	"github.com/regkit/usernamer/config"
	"github.com/regkit/usernamer/logger"
	"github.com/regkit/usernamer/model"
)

// Deriver turns verified identifiers into unique usernames. It holds no
// per-call state; uniqueness state lives entirely in the oracle.
type Deriver struct {
	cfg    *config.Config
	oracle model.Oracle
	logger *logger.Logger
}

// NewDeriver creates a Deriver with the given configuration and oracle.
func NewDeriver(cfg *config.Config, oracle model.Oracle, logger *logger.Logger) *Deriver {
	return &Deriver{
		cfg:    cfg,
		oracle: oracle,
		logger: logger,
	}
}

// DeriveUsername inspects the verified identifiers of one registration
// attempt and returns a username that the oracle reports as free.
//
// It returns "" with a nil error when no identifier of the configured kind
// is present and FailIfNotFound is unset, and model.ErrNoIdentifier when it
// is set. Oracle failures other than "username in use" are returned
// unchanged. The params argument is the host's registration request body and
// is not consulted.
func (d *Deriver) DeriveUsername(ctx context.Context, identifiers model.VerifiedIdentifiers, params model.RegistrationParams) (string, error) {
	derivationID := uuid.NewString()

	d.logger.Debug("Deriver: starting username derivation",
		"derivation_id", derivationID,
		"threepid_to_use", d.cfg.ThreepidToUse)

	id, ok := identifiers[d.cfg.ThreepidToUse]
	if !ok {
		if d.cfg.FailIfNotFound {
			d.logger.Error("Deriver: no verified identifier of configured kind",
				"derivation_id", derivationID,
				"threepid_to_use", d.cfg.ThreepidToUse)
			return "", model.ErrNoIdentifier
		}
		d.logger.Info("Deriver: no verified identifier of configured kind, returning empty result",
			"derivation_id", derivationID,
			"threepid_to_use", d.cfg.ThreepidToUse)
		return "", nil
	}

	candidate := id.Address
	if d.cfg.ThreepidToUse == model.KindEmail {
		candidate = normalizeEmail(id.Address)
	}

	username, err := resolveUnique(ctx, d.oracle, candidate, conflictPolicies[d.cfg.ThreepidToUse])
	if err != nil {
		d.logger.Error("Deriver: failed to resolve unique username",
			"derivation_id", derivationID,
			"candidate", candidate,
			"error", err.Error())
		// oracle failures other than "in use" are surfaced verbatim so the
		// host can decide user-visible behavior.
		return "", err
	}

	d.logger.Info("Deriver: username derived",
		"derivation_id", derivationID,
		"username", username)

	return username, nil
}
