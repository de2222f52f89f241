package basket

import (
	"io"
	"net/http"
)

// pipeRecorder is a streaming ResponseWriter whose body can be read while the
// handler is still running.
type pipeRecorder struct {
	header http.Header
	w      *io.PipeWriter
}

func newPipeRecorder() (*io.PipeReader, *pipeRecorder) {
	pr, pw := io.Pipe()
	return pr, &pipeRecorder{header: make(http.Header), w: pw}
}

func (p *pipeRecorder) Header() http.Header {
	return p.header
}

func (p *pipeRecorder) Write(b []byte) (int, error) {
	return p.w.Write(b)
}

func (p *pipeRecorder) WriteHeader(int) {}

func (p *pipeRecorder) Flush() {}

func (p *pipeRecorder) Close() error {
	return p.w.Close()
}
