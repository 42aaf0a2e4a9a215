package gen

import (
	"runtime"

	"go.uber.org/zap"
)

// DefaultHeader is the warning placed at the top of every generated and
// copied file unless overridden with WithHeader.
const DefaultHeader = "THIS FILE IS AUTO-GENERATED BY catgen. DO NOT EDIT."

// Config holds the global configuration for a generation run.
type Config struct {
	// JavaOut is the output root of the managed backend. Cleared and
	// recreated before writing.
	JavaOut string
	// CppOut is the output root of the manual backend. Cleared and
	// recreated before writing.
	CppOut string
	// JavaSupport is the directory holding the managed backend's static
	// support files, copied verbatim into JavaOut.
	JavaSupport string
	// CppSupport is the directory holding the manual backend's static
	// support files, copied verbatim into CppOut.
	CppSupport string
	// JavaPackage qualifies every generated managed-backend file, for
	// example "org.voltdb.catalog". Unused by the manual backend.
	JavaPackage string
	// Header is the comment placed at the top of every generated file.
	Header string
	// Workers bounds the number of concurrent file writes.
	Workers int
	// Logger receives run progress. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Option configures code generation.
type Option func(*Config) error

// NewConfig returns a Config with defaults applied, then the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Header:  DefaultHeader,
		Workers: runtime.GOMAXPROCS(0),
		Logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithJavaOut sets the managed backend's output root.
func WithJavaOut(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("JavaOut", nil, "output directory cannot be empty")
		}
		c.JavaOut = dir
		return nil
	}
}

// WithCppOut sets the manual backend's output root.
func WithCppOut(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("CppOut", nil, "output directory cannot be empty")
		}
		c.CppOut = dir
		return nil
	}
}

// WithSupportRoots sets the directories the static support files are copied
// from, one per backend.
func WithSupportRoots(javaDir, cppDir string) Option {
	return func(c *Config) error {
		c.JavaSupport = javaDir
		c.CppSupport = cppDir
		return nil
	}
}

// WithJavaPackage sets the package string qualifying every managed-backend
// file. For example: "org.voltdb.catalog".
func WithJavaPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("JavaPackage", nil, "package cannot be empty")
		}
		c.JavaPackage = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithWorkers sets the number of parallel file writers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n > 0 {
			c.Workers = n
		}
		return nil
	}
}

// WithLogger sets the run logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Config) error {
		if log != nil {
			c.Logger = log
		}
		return nil
	}
}

// validate checks that the config names everything a full run needs.
func (c *Config) validate() error {
	switch {
	case c.JavaOut == "":
		return NewConfigError("JavaOut", nil, "missing managed-backend output root")
	case c.CppOut == "":
		return NewConfigError("CppOut", nil, "missing manual-backend output root")
	case c.JavaPackage == "":
		return NewConfigError("JavaPackage", nil, "missing managed-backend package")
	}
	return nil
}
