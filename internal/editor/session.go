package editor

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// ErrNoImage is returned by operations that need a loaded image.
var ErrNoImage = errors.New("no image loaded")

// Info is the metadata a session reports about its image.
type Info struct {
	OriginalSize  string `json:"original_size,omitempty"`
	ProcessedSize string `json:"processed_size,omitempty"`
	FileType      string `json:"file_type,omitempty"`
}

// Session holds the editing state for one image: the pristine original, the
// current working buffer and the configuration.
//
// Configuration and image changes schedule the adjustment pipeline through a
// Debouncer; only the last change within the quiet window is processed. The
// pipeline always starts from the original. ApplyFilter and Equalize run
// synchronously on the current buffer, so they stack on top of whatever is
// displayed, until the next pipeline run replaces it.
//
// Buffers are never modified after they are stored. Every operation computes
// a new buffer and swaps it in under the session lock.
type Session struct {
	mu       sync.Mutex
	defaults Config
	config   Config
	original *imaging.Buffer
	current  *imaging.Buffer
	info     Info
	runs     uint64

	debounce *Debouncer
	logger   *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithDefaults sets the configuration used initially and restored by Reset.
func WithDefaults(c Config) Option {
	return func(s *Session) {
		s.defaults = c
	}
}

// WithDebounce sets the pipeline quiet window.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) {
		s.debounce = NewDebouncer(d)
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		defaults: DefaultConfig(),
		debounce: NewDebouncer(DefaultDebounce),
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.config = s.defaults
	return s
}

// Load replaces the session image. The buffer is copied, so the caller keeps
// ownership of buf. A pipeline run is scheduled.
func (s *Session) Load(buf *imaging.Buffer, fileType string) error {
	if buf == nil {
		return fmt.Errorf("load: nil buffer")
	}
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if buf.Width == 0 || buf.Height == 0 {
		return fmt.Errorf("load: empty image")
	}

	original := buf.Clone()

	s.mu.Lock()
	s.original = original
	s.current = original
	s.info = Info{
		OriginalSize: original.Size(),
		FileType:     fileType,
	}
	s.mu.Unlock()

	s.logger.Printf("loaded %s image %s", fileType, original.Size())
	s.schedule()
	return nil
}

// UpdateConfig merges patch into the configuration and schedules a pipeline
// run. On error the configuration is left unchanged and nothing is scheduled.
func (s *Session) UpdateConfig(patch ConfigPatch) (Config, error) {
	s.mu.Lock()
	cfg, err := patch.Apply(s.config)
	if err != nil {
		s.mu.Unlock()
		return s.Config(), fmt.Errorf("update config: %w", err)
	}
	s.config = cfg
	s.mu.Unlock()

	s.schedule()
	return cfg, nil
}

// ApplyFilter convolves the current buffer with kernel and makes the result
// current.
func (s *Session) ApplyFilter(kernel imaging.Kernel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoImage
	}
	out, err := imaging.Convolve(s.current, kernel)
	if err != nil {
		return fmt.Errorf("apply filter: %w", err)
	}
	s.current = out
	s.logger.Printf("applied %dx%d kernel to %s", kernel.Size(), kernel.Size(), out.Size())
	return nil
}

// Equalize equalizes the current buffer's luminance histogram and makes the
// result current.
func (s *Session) Equalize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoImage
	}
	s.current = imaging.Equalize(s.current)
	s.logger.Printf("equalized %s", s.current.Size())
	return nil
}

// Reset restores the original image and the default configuration, then
// schedules a pipeline run.
func (s *Session) Reset() error {
	s.mu.Lock()
	if s.original == nil {
		s.mu.Unlock()
		return ErrNoImage
	}
	s.current = s.original
	s.config = s.defaults
	s.info.ProcessedSize = ""
	s.mu.Unlock()

	s.logger.Printf("reset to original")
	s.schedule()
	return nil
}

// Export is a snapshot of the current buffer together with the encoding
// parameters to write it with.
type Export struct {
	Buffer   *imaging.Buffer
	Format   imaging.Format
	Quality  float64
	FileName string
}

// Export snapshots the current buffer. An empty format or a non-positive
// quality falls back to the configured value.
func (s *Session) Export(format imaging.Format, quality float64) (*Export, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoImage
	}

	cfg := s.config
	if format != "" {
		f, err := imaging.ParseFormat(string(format))
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		cfg.Format = f
	}
	if quality > 0 {
		cfg.Quality = clampQuality(quality)
	}

	return &Export{
		Buffer:   s.current.Clone(),
		Format:   cfg.Format,
		Quality:  cfg.Quality,
		FileName: cfg.FileName(),
	}, nil
}

// Encode writes the export in its format.
func (e *Export) Encode(w io.Writer) error {
	return imaging.Encode(w, e.Buffer, e.Format, e.Quality)
}

// Bytes encodes the export into memory.
func (e *Export) Bytes() ([]byte, error) {
	return imaging.EncodeBytes(e.Buffer, e.Format, e.Quality)
}

// Flush runs a pending pipeline run immediately, or waits for one already in
// progress. It reports whether a pending run was executed.
func (s *Session) Flush() bool {
	return s.debounce.Flush()
}

// Pending reports whether a pipeline run is scheduled.
func (s *Session) Pending() bool {
	return s.debounce.Pending()
}

// Close cancels any scheduled pipeline run and waits for a running one.
func (s *Session) Close() {
	s.debounce.Stop()
}

// Loaded reports whether an image has been loaded.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original != nil
}

// Config returns the current configuration.
func (s *Session) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Defaults returns the configuration Reset restores.
func (s *Session) Defaults() Config {
	return s.defaults
}

// Info returns the image metadata.
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// Current returns a copy of the current buffer, or nil before Load.
func (s *Session) Current() *imaging.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return s.current.Clone()
}

// Original returns a copy of the loaded image, or nil before Load.
func (s *Session) Original() *imaging.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.original == nil {
		return nil
	}
	return s.original.Clone()
}

// PipelineRuns returns how many pipeline runs have completed.
func (s *Session) PipelineRuns() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Session) schedule() {
	s.debounce.Trigger(s.runPipeline)
}

// runPipeline rebuilds the current buffer from the original using the
// configuration in effect when it runs.
func (s *Session) runPipeline() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.original == nil {
		return
	}
	adj, err := s.config.Adjustments()
	if err != nil {
		s.logger.Printf("pipeline skipped: %v", err)
		return
	}

	start := time.Now()
	out := imaging.Adjust(s.original, adj)
	s.current = out
	s.info.ProcessedSize = out.Size()
	s.runs++
	s.logger.Printf("pipeline run %d: %s -> %s in %v", s.runs, s.original.Size(), out.Size(), time.Since(start))
}
