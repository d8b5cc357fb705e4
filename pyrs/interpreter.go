package pyrs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ScopeMode selects the parent frame of a function call.
type ScopeMode int

const (
	// ScopeDynamic links a call frame to the environment active at the call
	// site, so a function sees its caller's variables.
	ScopeDynamic ScopeMode = iota
	// ScopeLexical links a call frame to the frame in which the function was
	// defined.
	ScopeLexical
)

func (m ScopeMode) String() string {
	switch m {
	case ScopeDynamic:
		return "dynamic"
	case ScopeLexical:
		return "lexical"
	default:
		return fmt.Sprintf("ScopeMode(%d)", int(m))
	}
}

// ParseScopeMode accepts "dynamic" or "lexical", case-insensitively.
func ParseScopeMode(name string) (ScopeMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dynamic":
		return ScopeDynamic, nil
	case "lexical":
		return ScopeLexical, nil
	default:
		return 0, fmt.Errorf("unknown scoping mode %q (want dynamic or lexical)", name)
	}
}

const DefaultRecursionLimit = 1000

// Config controls interpreter output, scoping and execution bounds. Zero
// quotas mean unlimited.
type Config struct {
	Stdout           io.Writer
	Scoping          ScopeMode
	RecursionLimit   int
	StepQuota        int
	MemoryQuotaBytes int
	Logger           *slog.Logger
}

// Engine compiles and runs programs under one Config. An Engine holds no
// per-run state; every Script.Run starts from an empty environment.
type Engine struct {
	config Config
	logger *slog.Logger
}

// NewEngine validates cfg and fills in defaults: os.Stdout for output,
// DefaultRecursionLimit, and a discarding logger.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.RecursionLimit < 0 {
		return nil, fmt.Errorf("pyrs: recursion limit must be non-negative, got %d", cfg.RecursionLimit)
	}
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("pyrs: step quota must be non-negative, got %d", cfg.StepQuota)
	}
	if cfg.MemoryQuotaBytes < 0 {
		return nil, fmt.Errorf("pyrs: memory quota must be non-negative, got %d", cfg.MemoryQuotaBytes)
	}
	if cfg.Scoping != ScopeDynamic && cfg.Scoping != ScopeLexical {
		return nil, fmt.Errorf("pyrs: unknown scoping mode %d", int(cfg.Scoping))
	}

	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = DefaultRecursionLimit
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Engine{config: cfg, logger: cfg.Logger}, nil
}

// MustNewEngine is NewEngine for configurations known to be valid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

func (e *Engine) Config() Config { return e.config }
