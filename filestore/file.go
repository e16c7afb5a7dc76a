package filestore

import (
	"io"
	"sync"
)

// File is a single artifact being written to a store.
type File struct {
	Name  string
	Kind  Kind
	Store FileWriter

	lck sync.Mutex
	// file is nil until Open, and stays nil when the store skips the file
	file io.WriteCloser
}

// IsOpen returns if the file has been opened and accepted by the store
func (file *File) IsOpen() bool {
	file.lck.Lock()
	defer file.lck.Unlock()
	return file.file != nil
}

// Open obtains a writer for the file from the store. A store that skips
// the file is not an error; writes are then discarded.
func (file *File) Open() error {
	if file.Store == nil {
		return ErrNilFileWriter
	}

	file.lck.Lock()
	defer file.lck.Unlock()
	if file.file != nil {
		file.file.Close()
		file.file = nil
	}
	w, err := file.Store.Writer(file.Name, file.Kind)
	if err == ErrSkipWrite {
		return nil
	}
	if err != nil {
		return err
	}
	file.file = w
	return nil
}

// Write to the file store
func (file *File) Write(p []byte) (n int, err error) {
	file.lck.Lock()
	defer file.lck.Unlock()
	if file.file == nil {
		return len(p), nil
	}
	return file.file.Write(p)
}

// Close the file
func (file *File) Close() error {
	file.lck.Lock()
	f := file.file
	file.file = nil
	file.lck.Unlock()

	if f == nil {
		return nil
	}
	return f.Close()
}

// WriteFile writes the output of fn to name in the store.
func WriteFile(store FileWriter, name string, kind Kind, fn func(io.Writer) error) error {
	file := File{Name: name, Kind: kind, Store: store}
	if err := file.Open(); err != nil {
		return err
	}
	if err := fn(&file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
