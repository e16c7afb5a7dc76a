package filestore

import "github.com/gdey/errors"

const (
	// ErrSkipWrite is returned by a FileWriter when it does not want the file
	ErrSkipWrite = errors.String("skip write")

	// ErrNoProvidersRegistered is returned when no providers are registered with the system
	ErrNoProvidersRegistered = errors.String("no providers registered")

	// ErrNilFileWriter is returned when a file is opened without a store
	ErrNilFileWriter = errors.String("filestore is nil")
)

// ErrProviderTypeExists occurs when a provider is trying to register with the same
// name as another provider.
type ErrProviderTypeExists string

func (err ErrProviderTypeExists) Error() string {
	return "filestore provider (" + string(err) + ") already exists"
}

// ErrUnknownProvider is returned when a requested provider is not registered
type ErrUnknownProvider string

func (err ErrUnknownProvider) Error() string {
	return "unknown filestore provider (" + string(err) + ")"
}

// ErrUnknownKind is returned when a configured artifact kind is not known
type ErrUnknownKind string

func (err ErrUnknownKind) Error() string {
	return "unknown artifact kind (" + string(err) + ")"
}

// ErrPath records the error and the file and filestore that caused it.
type ErrPath struct {
	Filepath      string
	Kind          Kind
	FilestoreType string
	Err           error
}

func (err ErrPath) Error() string {
	return "filestore " + err.FilestoreType + ": " + err.Filepath + ": " + err.Err.Error()
}

// Cause returns the underlying error
func (err ErrPath) Cause() error { return err.Err }
