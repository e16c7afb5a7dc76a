package postgresql

import (
	"fmt"

	"github.com/gdey/errors"
)

const (
	// ErrMissingCertKey is returned when only one of the ssl cert and key is configured
	ErrMissingCertKey = errors.String("both " + ConfigKeySSLCert + " and " + ConfigKeySSLKey + " are required")
)

// ErrInvalidSSLMode is returned when something is wrong with SSL configuration
type ErrInvalidSSLMode string

func (e ErrInvalidSSLMode) Error() string {
	return fmt.Sprintf("postgresql: invalid ssl mode (%v)", string(e))
}
