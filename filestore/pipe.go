package filestore

import "io"

// pipeWriter streams writes to a consumer running in its own goroutine.
type pipeWriter struct {
	*io.PipeWriter
	typ  string
	name string
	done chan error
}

// Close closes the pipe and waits for the consumer to finish.
func (pw pipeWriter) Close() error {
	if err := pw.PipeWriter.Close(); err != nil {
		return err
	}
	if err := <-pw.done; err != nil {
		return ErrPath{Filepath: pw.name, FilestoreType: pw.typ, Err: err}
	}
	return nil
}

// Pipe returns a writer whose content is read by fn. Close returns the
// error of fn.
func Pipe(typ string, name string, fn func(io.Reader) error) io.WriteCloser {
	r, w := io.Pipe()
	done := make(chan error, 1)
	go func() {
		err := fn(r)
		// unblock writers if fn stopped reading early
		r.CloseWithError(err)
		done <- err
	}()
	return pipeWriter{
		PipeWriter: w,
		typ:        typ,
		name:       name,
		done:       done,
	}
}
